package classify_test

import (
	"context"
	"errors"
	"testing"

	classify "github.com/d6vs-git/us-squash-sub000/internal/domain/classify"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassifyTiers(t *testing.T) {
	Convey("Given a classifier", t, func() {
		c := classify.NewClassifier()

		cases := []struct {
			name string
			want classify.Type
			prio int
		}{
			{"U.S. Junior Open", classify.TypeJuniorOpen, 0},
			{"Super JCT Finals", classify.TypeSuperChampionship, 1},
			{"Regional Championship", classify.TypeChampionship, 2},
			{"Spring Gold Classic", classify.TypeGold, 3},
			{"National Singles", classify.TypeGold, 3},
			{"Silver National Invitational", classify.TypeSilverNational, 4},
			{"Autumn Silver Open", classify.TypeSilver, 5},
			{"Bronze National Qualifier", classify.TypeBronzeNational, 6},
			{"Club Bronze Round Robin", classify.TypeBronze, 7},
			{"Friday Night Ladder", classify.TypeSilver, 5}, // unmatched defaults to silver
		}

		Convey("When classifying tournaments by name keywords", func() {
			for _, tc := range cases {
				got := c.Classify([]classify.Tournament{{ID: 1, Name: tc.name}}, "BU19 Singles")
				So(got[0].Type, ShouldEqual, tc.want)
				So(got[0].Priority, ShouldEqual, tc.prio)
			}
		})

		Convey("When the keyword appears in the description instead", func() {
			got := c.Classify([]classify.Tournament{
				{ID: 2, Name: "Harvest Cup", Description: "A JCT points event"},
			}, "BU19 Singles")
			So(got[0].Type, ShouldEqual, classify.TypeChampionship)
		})

		Convey("When keywords differ only by case", func() {
			got := c.Classify([]classify.Tournament{{ID: 3, Name: "GOLD open"}}, "BU19 Singles")
			So(got[0].Type, ShouldEqual, classify.TypeGold)
		})
	})
}

func TestEntrantEstimates(t *testing.T) {
	Convey("Given a classifier with the default popularity table", t, func() {
		c := classify.NewClassifier()

		Convey("When the payload carries a per-division entrant list", func() {
			got := c.Classify([]classify.Tournament{{
				ID:            1,
				Name:          "Spring Gold Classic",
				TotalEntrants: 200,
				DivisionEntrants: map[string][]classify.Entrant{
					"BU19 Singles": make([]classify.Entrant, 17),
				},
			}}, "BU19 Singles")

			Convey("Then the list length is authoritative", func() {
				So(got[0].EstimatedEntrants, ShouldEqual, 17)
			})
		})

		Convey("When only total entrants are known", func() {
			got := c.Classify([]classify.Tournament{{
				ID:            2,
				Name:          "Spring Gold Classic",
				TotalEntrants: 50,
			}}, "BU19 Singles")

			Convey("Then total x popularity x tier factor applies", func() {
				// 50 * 0.30 * 1.2 = 18
				So(got[0].EstimatedEntrants, ShouldEqual, 18)
			})
		})

		Convey("When the estimate would exceed a realistic bracket", func() {
			got := c.Classify([]classify.Tournament{{
				ID:            3,
				Name:          "Super JCT",
				TotalEntrants: 500,
			}}, "BU19 Singles")
			So(got[0].EstimatedEntrants, ShouldEqual, 24)
		})

		Convey("When the tournament is tiny", func() {
			got := c.Classify([]classify.Tournament{{
				ID:            4,
				Name:          "Club Bronze Round Robin",
				TotalEntrants: 8,
			}}, "BU19 Singles")
			So(got[0].EstimatedEntrants, ShouldEqual, 4)
		})

		Convey("When the division is unknown to the popularity table", func() {
			got := c.Classify([]classify.Tournament{{
				ID:            5,
				Name:          "Autumn Silver Open",
				TotalEntrants: 60,
			}}, "Mixed 35+ Singles")
			// 60 * 0.2 * 1.0 = 12
			So(got[0].EstimatedEntrants, ShouldEqual, 12)
		})
	})
}

func TestCandidateOrdering(t *testing.T) {
	Convey("Given tournaments across tiers and dates", t, func() {
		c := classify.NewClassifier()
		got := c.Classify([]classify.Tournament{
			{ID: 1, Name: "Autumn Silver Open", StartDate: "2026-10-01"},
			{ID: 2, Name: "Spring Gold Classic", StartDate: "2026-09-15"},
			{ID: 3, Name: "Summer Silver Open", StartDate: "2026-07-04"},
			{ID: 4, Name: "Regional Championship", StartDate: "2026-11-20"},
			{ID: 5, Name: "Mystery Cup Silver"}, // no date
		}, "BU19 Singles")

		Convey("Then candidates sort by priority, then start date, dated first", func() {
			ids := []int{got[0].ID, got[1].ID, got[2].ID, got[3].ID, got[4].ID}
			So(ids, ShouldResemble, []int{4, 2, 3, 1, 5})
		})
	})
}

// fakeEntrants serves fixed entrant lists and can fail per tournament.
type fakeEntrants struct {
	byTournament map[int]int
	fail         map[int]bool
}

func (f *fakeEntrants) FetchDivisionEntrants(_ context.Context, tournamentID, _ int) ([]classify.Entrant, error) {
	if f.fail[tournamentID] {
		return nil, errors.New("entrants lookup failed")
	}
	return make([]classify.Entrant, f.byTournament[tournamentID]), nil
}

func TestEnrichEntrants(t *testing.T) {
	Convey("Given classified candidates and a flaky entrants source", t, func() {
		c := classify.NewClassifier(classify.WithEnrichConcurrency(2))
		cands := c.Classify([]classify.Tournament{
			{ID: 1, Name: "Spring Gold Classic", TotalEntrants: 50},
			{ID: 2, Name: "Autumn Silver Open", TotalEntrants: 50},
			{ID: 3, Name: "Club Bronze Round Robin", TotalEntrants: 50},
		}, "BU19 Singles")

		src := &fakeEntrants{
			byTournament: map[int]int{1: 12, 3: 9},
			fail:         map[int]bool{2: true},
		}

		Convey("When enriching with real entrant counts", func() {
			c.EnrichEntrants(context.Background(), cands, 105, src)

			byID := map[int]classify.Candidate{}
			for _, cand := range cands {
				byID[cand.ID] = cand
			}

			Convey("Then successful lookups override the estimate", func() {
				So(byID[1].ActualEntrants, ShouldNotBeNil)
				So(byID[1].DivisionEntrantCount(), ShouldEqual, 12)
				So(byID[3].DivisionEntrantCount(), ShouldEqual, 9)
			})

			Convey("And a failed lookup falls back to the estimate", func() {
				So(byID[2].ActualEntrants, ShouldBeNil)
				So(byID[2].DivisionEntrantCount(), ShouldEqual, byID[2].EstimatedEntrants)
			})
		})
	})
}
