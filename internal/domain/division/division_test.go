package division_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	division "github.com/d6vs-git/us-squash-sub000/internal/domain/division"
	. "github.com/smartystreets/goconvey/convey"
)

// fixedClock pins "today" so age math is deterministic.
func fixedClock() time.Time {
	return time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
}

// birthDateForAge returns a birth date such that the player's birthday has
// already passed this year, making them exactly `age` years old.
func birthDateForAge(age int) string {
	return fmt.Sprintf("%04d-01-10", fixedClock().Year()-age)
}

func newResolver() *division.Resolver {
	return &division.Resolver{Now: fixedClock}
}

func TestResolveJuniors(t *testing.T) {
	Convey("Given a resolver with a pinned clock", t, func() {
		r := newResolver()

		Convey("When resolving a 17-year-old boy", func() {
			d, err := r.Resolve(division.Profile{BirthDate: birthDateForAge(17), Gender: "M"})
			So(err, ShouldBeNil)
			So(d.Name, ShouldEqual, "BU19 Singles")
		})

		Convey("When resolving a boy who is exactly 18", func() {
			d, err := r.Resolve(division.Profile{BirthDate: birthDateForAge(18), Gender: "M"})
			So(err, ShouldBeNil)
			So(d.Name, ShouldEqual, "BU19 Singles")
		})

		Convey("When resolving a 10-year-old girl", func() {
			d, err := r.Resolve(division.Profile{BirthDate: birthDateForAge(10), Gender: "F"})
			So(err, ShouldBeNil)
			So(d.Name, ShouldEqual, "GU11 Singles")
		})

		Convey("When the birthday has not been reached this year", func() {
			// Born in December: still one year younger in June.
			birth := fmt.Sprintf("%04d-12-01", fixedClock().Year()-11)
			d, err := r.Resolve(division.Profile{BirthDate: birth, Gender: "F"})
			So(err, ShouldBeNil)
			So(d.Name, ShouldEqual, "GU11 Singles")
		})

		Convey("When bracket boundaries are crossed", func() {
			cases := map[int]string{
				11: "BU13 Singles",
				12: "BU13 Singles",
				13: "BU15 Singles",
				15: "BU17 Singles",
			}
			for age, want := range cases {
				d, err := r.Resolve(division.Profile{BirthDate: birthDateForAge(age), Gender: "M"})
				So(err, ShouldBeNil)
				So(d.Name, ShouldEqual, want)
			}
		})
	})
}

func TestResolveAdults(t *testing.T) {
	Convey("Given a resolver with a pinned clock", t, func() {
		r := newResolver()

		Convey("When resolving a 19-year-old man", func() {
			d, err := r.Resolve(division.Profile{BirthDate: birthDateForAge(19), Gender: "M"})
			So(err, ShouldBeNil)
			So(d.Name, ShouldEqual, "Men's Open Singles")
		})

		Convey("When resolving a 45-year-old man", func() {
			d, err := r.Resolve(division.Profile{BirthDate: birthDateForAge(45), Gender: "M"})
			So(err, ShouldBeNil)
			So(d.Name, ShouldEqual, "Men's 40+ Singles")
		})

		Convey("When resolving a woman exactly at a threshold", func() {
			d, err := r.Resolve(division.Profile{BirthDate: birthDateForAge(50), Gender: "F"})
			So(err, ShouldBeNil)
			So(d.Name, ShouldEqual, "Women's 50+ Singles")
		})

		Convey("When resolving a 72-year-old woman", func() {
			d, err := r.Resolve(division.Profile{BirthDate: birthDateForAge(72), Gender: "F"})
			So(err, ShouldBeNil)
			So(d.Name, ShouldEqual, "Women's 70+ Singles")
		})
	})
}

func TestResolveFailures(t *testing.T) {
	Convey("Given a resolver", t, func() {
		r := newResolver()

		Convey("When the birth date is missing", func() {
			_, err := r.Resolve(division.Profile{Gender: "M"})
			So(errors.Is(err, division.ErrUnresolved), ShouldBeTrue)
		})

		Convey("When the gender is missing", func() {
			_, err := r.Resolve(division.Profile{BirthDate: "2001-05-05"})
			So(errors.Is(err, division.ErrUnresolved), ShouldBeTrue)
		})

		Convey("When the birth date is malformed", func() {
			_, err := r.Resolve(division.Profile{BirthDate: "not-a-date", Gender: "F"})
			So(errors.Is(err, division.ErrUnresolved), ShouldBeTrue)
		})
	})
}

func TestTableIsCopied(t *testing.T) {
	Convey("Given the static division table", t, func() {
		first := division.Table()

		Convey("When a caller mutates their copy", func() {
			first[0].Name = "mutated"

			Convey("Then the table itself is unchanged", func() {
				So(division.Table()[0].Name, ShouldEqual, "BU11 Singles")
			})
		})
	})
}
