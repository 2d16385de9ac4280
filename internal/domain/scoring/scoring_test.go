package scoring_test

import (
	"math"
	"testing"

	"github.com/okian/timeblock/internal/domain/model"
	scoring "github.com/okian/timeblock/internal/domain/scoring"
	"github.com/okian/timeblock/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEfficiency(t *testing.T) {
	Convey("Given the efficiency calculator", t, func() {
		Convey("When no blocks are scheduled", func() {
			Convey("Then efficiency should be zero for any minutes", func() {
				So(scoring.Efficiency(0, 0), ShouldEqual, 0.0)
				So(scoring.Efficiency(0, 999), ShouldEqual, 0.0)
				So(scoring.Efficiency(0, math.MaxInt32), ShouldEqual, 0.0)
			})
		})

		Convey("When the average block is inside the optimal band", func() {
			Convey("Then efficiency should be exactly one", func() {
				So(scoring.Efficiency(2, 100), ShouldEqual, 1.0)
				So(scoring.Efficiency(4, 240), ShouldEqual, 1.0)
			})

			Convey("And both boundaries should be inclusive", func() {
				So(scoring.Efficiency(1, 45), ShouldEqual, 1.0)
				So(scoring.Efficiency(1, 90), ShouldEqual, 1.0)
				So(scoring.Efficiency(3, 135), ShouldEqual, 1.0)
				So(scoring.Efficiency(3, 270), ShouldEqual, 1.0)
			})

			Convey("And it should hold for every m in [45b, 90b]", func() {
				for b := 1; b <= 6; b++ {
					for m := 45 * b; m <= 90*b; m++ {
						So(scoring.Efficiency(b, m), ShouldEqual, 1.0)
					}
				}
			})
		})

		Convey("When the average block is shorter than 45 minutes", func() {
			Convey("Then efficiency should ramp linearly", func() {
				So(scoring.Efficiency(4, 100), ShouldAlmostEqual, 25.0/45.0, 1e-12)
				So(scoring.Efficiency(4, 100), ShouldAlmostEqual, 0.5556, 1e-4)
				So(scoring.Efficiency(2, 0), ShouldEqual, 0.0)
				So(scoring.Efficiency(1, 30), ShouldAlmostEqual, 30.0/45.0, 1e-12)
			})

			Convey("And it should increase with the average", func() {
				prev := -1.0
				for m := 0; m < 45; m++ {
					e := scoring.Efficiency(1, m)
					So(e, ShouldBeGreaterThan, prev)
					So(e, ShouldBeLessThan, 1.0)
					prev = e
				}
			})
		})

		Convey("When the average block is longer than 90 minutes", func() {
			Convey("Then efficiency should decay as 90/avg", func() {
				So(scoring.Efficiency(1, 120), ShouldAlmostEqual, 0.75, 1e-12)
				So(scoring.Efficiency(1, 180), ShouldEqual, 0.5)
			})

			Convey("And it should never drop below one half", func() {
				So(scoring.Efficiency(1, 480), ShouldEqual, 0.5)
				So(scoring.Efficiency(1, math.MaxInt32), ShouldEqual, 0.5)
			})

			Convey("And it should not increase with the average", func() {
				prev := 2.0
				for m := 91; m <= 400; m++ {
					e := scoring.Efficiency(1, m)
					So(e, ShouldBeLessThanOrEqualTo, prev)
					So(e, ShouldBeGreaterThanOrEqualTo, scoring.LongBlockFloor)
					prev = e
				}
			})
		})

		Convey("When inputs are negative", func() {
			Convey("Then efficiency should be zero", func() {
				So(scoring.Efficiency(-1, 60), ShouldEqual, 0.0)
				So(scoring.Efficiency(2, -60), ShouldEqual, 0.0)
				So(scoring.Efficiency(-2, -60), ShouldEqual, 0.0)
			})
		})
	})
}

func TestProductivity(t *testing.T) {
	Convey("Given the productivity calculator", t, func() {
		Convey("When no blocks are scheduled", func() {
			Convey("Then productivity should be zero for any minutes", func() {
				So(scoring.Productivity(0, 0), ShouldEqual, 0.0)
				So(scoring.Productivity(0, 480), ShouldEqual, 0.0)
				So(scoring.Productivity(0, math.MaxInt32), ShouldEqual, 0.0)
			})
		})

		Convey("When one long block fills the workday", func() {
			Convey("Then the long-block penalty should apply", func() {
				// base 100, bonus 2, efficiency max(0.5, 90/480) = 0.5
				So(scoring.Productivity(1, 480), ShouldEqual, 51.0)
			})
		})

		Convey("When eight optimal blocks fill the workday", func() {
			Convey("Then the score should be capped at 100", func() {
				// base 100, bonus 16, efficiency 1 -> 116
				So(scoring.Productivity(8, 480), ShouldEqual, 100.0)
			})
		})

		Convey("When the result stays below the ceiling", func() {
			Convey("Then it should equal (base + bonus) * efficiency", func() {
				// base 50, bonus 8, efficiency 1
				So(scoring.Productivity(4, 240), ShouldAlmostEqual, 58.0, 1e-12)
				// base 100/480*100, bonus 8, efficiency 25/45
				want := (100.0/480.0*100.0 + 8.0) * (25.0 / 45.0)
				So(scoring.Productivity(4, 100), ShouldAlmostEqual, want, 1e-12)
			})
		})

		Convey("When many blocks are scheduled", func() {
			Convey("Then the planning bonus should saturate at 20", func() {
				// 10 and 15 blocks of 30 minutes: base differs, bonus is 20 for both
				for _, b := range []int{10, 15, 40} {
					m := b * 30
					want := (float64(m)/480.0*100.0 + 20.0) * (30.0 / 45.0)
					So(scoring.Productivity(b, m), ShouldAlmostEqual, math.Min(100, want), 1e-9)
				}
			})
		})

		Convey("When minutes are extreme", func() {
			Convey("Then the ceiling should still hold", func() {
				So(scoring.Productivity(1, math.MaxInt32), ShouldEqual, 100.0)
				So(scoring.Productivity(math.MaxInt32, math.MaxInt32), ShouldBeLessThanOrEqualTo, 100.0)
			})
		})

		Convey("When sweeping a grid of inputs", func() {
			Convey("Then every score should stay within [0, 100]", func() {
				for b := 0; b <= 30; b++ {
					for m := 0; m <= 1500; m += 15 {
						p := scoring.Productivity(b, m)
						So(p, ShouldBeGreaterThanOrEqualTo, 0.0)
						So(p, ShouldBeLessThanOrEqualTo, 100.0)
					}
				}
			})
		})

		Convey("When inputs are negative", func() {
			Convey("Then productivity should be zero", func() {
				So(scoring.Productivity(-3, 480), ShouldEqual, 0.0)
				So(scoring.Productivity(3, -480), ShouldEqual, 0.0)
			})
		})
	})
}

func TestClassify(t *testing.T) {
	Convey("Given block averages across the bands", t, func() {
		So(scoring.Classify(0, 100), ShouldEqual, types.BandNone)
		So(scoring.Classify(-1, 100), ShouldEqual, types.BandNone)
		So(scoring.Classify(4, 100), ShouldEqual, types.BandShort)
		So(scoring.Classify(1, 45), ShouldEqual, types.BandOptimal)
		So(scoring.Classify(1, 90), ShouldEqual, types.BandOptimal)
		So(scoring.Classify(1, 91), ShouldEqual, types.BandLong)
	})
}

func TestEvaluate(t *testing.T) {
	Convey("Given the breakdown evaluator", t, func() {
		Convey("When evaluating a capped sample", func() {
			b := scoring.Evaluate(model.ScheduleSample{BlockCount: 8, TotalMinutes: 480})

			Convey("Then every term should be reported", func() {
				So(b.BlockCount, ShouldEqual, 8)
				So(b.TotalMinutes, ShouldEqual, 480)
				So(b.AverageBlockMinutes, ShouldEqual, 60.0)
				So(b.Band, ShouldEqual, types.BandOptimal)
				So(b.BaseScore, ShouldEqual, 100.0)
				So(b.PlanningBonus, ShouldEqual, 16.0)
				So(b.Efficiency, ShouldEqual, 1.0)
				So(b.RawScore, ShouldEqual, 116.0)
				So(b.Productivity, ShouldEqual, 100.0)
				So(b.Capped, ShouldBeTrue)
			})
		})

		Convey("When evaluating a zero-block sample", func() {
			b := scoring.Evaluate(model.ScheduleSample{BlockCount: 0, TotalMinutes: 300})

			Convey("Then only the inputs and band should be set", func() {
				So(b.TotalMinutes, ShouldEqual, 300)
				So(b.Band, ShouldEqual, types.BandNone)
				So(b.Productivity, ShouldEqual, 0.0)
				So(b.Efficiency, ShouldEqual, 0.0)
				So(b.Capped, ShouldBeFalse)
			})
		})

		Convey("When comparing with the scalar functions", func() {
			Convey("Then the breakdown should agree for every input", func() {
				for bc := 0; bc <= 12; bc++ {
					for m := 0; m <= 1200; m += 20 {
						b := scoring.Evaluate(model.ScheduleSample{BlockCount: bc, TotalMinutes: m})
						So(b.Productivity, ShouldEqual, scoring.Productivity(bc, m))
						So(b.Efficiency, ShouldEqual, scoring.Efficiency(bc, m))
					}
				}
			})
		})
	})
}

func BenchmarkProductivity(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = scoring.Productivity(i%16, i%960)
	}
}
