package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "github.com/d6vs-git/us-squash-sub000/internal/adapters/http/api"
	classify "github.com/d6vs-git/us-squash-sub000/internal/domain/classify"
	division "github.com/d6vs-git/us-squash-sub000/internal/domain/division"
	plan "github.com/d6vs-git/us-squash-sub000/internal/domain/plan"
	planner "github.com/d6vs-git/us-squash-sub000/internal/planner"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeDeps struct {
	rec *plan.TournamentRecommendation
	err error
}

func (f *fakeDeps) GenerateRecommendations(_ context.Context, _ planner.UserData, _ []classify.Tournament, _ planner.Goal) (*plan.TournamentRecommendation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rec, nil
}

type fakeStats struct{}

func (fakeStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"plans_generated": 7}
}

func newMux(deps api.Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, fakeStats{}).Register(mux)
	return mux
}

const validBody = `{
	"user_data": {"player_id": 5050, "first_name": "Avery", "last_name": "Player", "birth_date": "2009-01-10", "gender": "M"},
	"tournaments": [{"id": 1, "name": "Spring Gold Classic"}],
	"goal": {"type": "ranking", "target_ranking": 20}
}`

func TestHandlePostRecommendations(t *testing.T) {
	Convey("Given the recommendations endpoint", t, func() {
		rec := &plan.TournamentRecommendation{PlanID: "plan-1"}
		rec.CurrentAnalysis.CurrentRanking = 50

		Convey("When posting a valid request", func() {
			mux := newMux(&fakeDeps{rec: rec})
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(validBody)))

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")
			So(w.Header().Get("X-Request-Id"), ShouldNotBeEmpty)

			var got plan.TournamentRecommendation
			So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
			So(got.PlanID, ShouldEqual, "plan-1")
			So(got.CurrentAnalysis.CurrentRanking, ShouldEqual, 50)
		})

		Convey("When the body is not JSON", func() {
			mux := newMux(&fakeDeps{rec: rec})
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader("not json")))

			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When required fields are missing", func() {
			mux := newMux(&fakeDeps{rec: rec})
			w := httptest.NewRecorder()
			body := `{"user_data": {"player_id": 5050, "gender": "M"}, "goal": {}}`
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body)))

			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, "birth_date")
		})

		Convey("When the method is wrong", func() {
			mux := newMux(&fakeDeps{rec: rec})
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recommendations", nil))

			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})

		Convey("When the division cannot be resolved", func() {
			mux := newMux(&fakeDeps{err: fmt.Errorf("resolve: %w", division.ErrUnresolved)})
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(validBody)))

			So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
			So(w.Body.String(), ShouldContainSubstring, "division_unresolved")
		})

		Convey("When the generation call fails", func() {
			mux := newMux(&fakeDeps{err: fmt.Errorf("call: %w", planner.ErrGeneration)})
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(validBody)))

			So(w.Code, ShouldEqual, http.StatusBadGateway)
			So(w.Body.String(), ShouldContainSubstring, "generation_failed")
		})

		Convey("When the pipeline fails for an unclassified reason", func() {
			mux := newMux(&fakeDeps{err: fmt.Errorf("listing fetch: connection reset")})
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(validBody)))

			So(w.Code, ShouldEqual, http.StatusBadGateway)

			var resp struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			}
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Code, ShouldEqual, "plan_failed")
			So(resp.Message, ShouldContainSubstring, api.ErrUpstream.Error())
		})
	})
}

func TestHandleHealthAndStats(t *testing.T) {
	Convey("Given the service endpoints", t, func() {
		mux := newMux(&fakeDeps{})

		Convey("Then /healthz reports ok", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"status"`)
		})

		Convey("And /stats serves the provider's snapshot", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats", nil))

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "plans_generated")
		})

		Convey("And /stats rejects non-GET methods with the error envelope", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/stats", strings.NewReader("{}")))

			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")
			So(w.Body.String(), ShouldContainSubstring, "method_not_allowed")
		})
	})
}
