package beat_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"git.lost.host/meutraa/pulse/internal/beat"
	. "github.com/smartystreets/goconvey/convey"
)

var epoch = time.Unix(1000, 0)

func at(d time.Duration) time.Time { return epoch.Add(d) }

func mustClock(bpm float64) *beat.Clock {
	c, err := beat.New(bpm, epoch)
	if err != nil {
		panic(err)
	}
	return c
}

func TestNew(t *testing.T) {
	Convey("Given a tempo", t, func() {
		Convey("When it is 120 bpm", func() {
			c, err := beat.New(120, epoch)

			Convey("Then the interval is half a second", func() {
				So(err, ShouldBeNil)
				So(c.Interval(), ShouldEqual, 500*time.Millisecond)
				So(c.BPM(), ShouldEqual, 120.0)
				So(c.Epoch().Equal(epoch), ShouldBeTrue)
			})
		})

		Convey("When it is not a positive number", func() {
			for _, bpm := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
				c, err := beat.New(bpm, epoch)
				So(c, ShouldBeNil)
				So(errors.Is(err, beat.ErrInvalidArgument), ShouldBeTrue)
			}
		})

		Convey("When it is so fast the interval rounds to nothing", func() {
			_, err := beat.New(1e12, epoch)
			So(errors.Is(err, beat.ErrInvalidArgument), ShouldBeTrue)
		})
	})
}

func TestDistance(t *testing.T) {
	Convey("Given a 120 bpm clock", t, func() {
		c := mustClock(120)

		Convey("Then instants either side of the midpoint fold onto the same distance", func() {
			So(c.Distance(at(240*time.Millisecond)), ShouldEqual, 240*time.Millisecond)
			So(c.Distance(at(260*time.Millisecond)), ShouldEqual, 240*time.Millisecond)
		})

		Convey("Then a beat is at distance zero", func() {
			So(c.Distance(at(0)), ShouldEqual, time.Duration(0))
			So(c.Distance(at(1500*time.Millisecond)), ShouldEqual, time.Duration(0))
		})

		Convey("Then the midpoint is half an interval", func() {
			So(c.Distance(at(750*time.Millisecond)), ShouldEqual, 250*time.Millisecond)
		})

		Convey("Then instants before the epoch count as beat 0", func() {
			So(c.Distance(at(-120*time.Millisecond)), ShouldEqual, time.Duration(0))
			So(c.Distance(at(-time.Hour)), ShouldEqual, time.Duration(0))
		})
	})

	Convey("Given a range of tempos", t, func() {
		for _, bpm := range []float64{37, 90, 120, 143.5, 200, 311} {
			c := mustClock(bpm)
			i := c.Interval()

			Convey("Then the distance stays within half an interval at "+c.Interval().String(), func() {
				for d := time.Duration(0); d < 5*time.Second; d += 7919 * time.Microsecond {
					got := c.Distance(at(d))
					So(got, ShouldBeGreaterThanOrEqualTo, time.Duration(0))
					So(got, ShouldBeLessThanOrEqualTo, i/2)
				}
			})

			Convey("Then the distance repeats every interval at "+c.Interval().String(), func() {
				for d := time.Duration(0); d < 3*time.Second; d += 3571 * time.Microsecond {
					So(c.Distance(at(d+i)), ShouldEqual, c.Distance(at(d)))
				}
			})

			Convey("Then early and late by the same amount are the same distance at "+c.Interval().String(), func() {
				for x := time.Duration(0); x <= i/2; x += i / 17 {
					So(c.Distance(at(i+x)), ShouldEqual, c.Distance(at(i-x)))
					So(c.Distance(at(3*i+x)), ShouldEqual, c.Distance(at(3*i-x)))
				}
			})
		}
	})
}

func TestOffset(t *testing.T) {
	Convey("Given a 120 bpm clock", t, func() {
		c := mustClock(120)

		Convey("Then late taps are positive and early taps negative", func() {
			So(c.Offset(at(1030*time.Millisecond)), ShouldEqual, 30*time.Millisecond)
			So(c.Offset(at(970*time.Millisecond)), ShouldEqual, -30*time.Millisecond)
		})

		Convey("Then the midpoint reads as late", func() {
			So(c.Offset(at(250*time.Millisecond)), ShouldEqual, 250*time.Millisecond)
		})

		Convey("Then its magnitude matches Distance", func() {
			for d := time.Duration(0); d < 2*time.Second; d += 13 * time.Millisecond {
				o := c.Offset(at(d))
				if o < 0 {
					o = -o
				}
				So(o, ShouldEqual, c.Distance(at(d)))
			}
		})
	})
}

func TestNearest(t *testing.T) {
	Convey("Given a 120 bpm clock", t, func() {
		c := mustClock(120)

		Convey("When the tap is just before beat 2", func() {
			k, when := c.Nearest(at(980 * time.Millisecond))

			Convey("Then beat 2 is nearest", func() {
				So(k, ShouldEqual, int64(2))
				So(when.Equal(at(time.Second)), ShouldBeTrue)
			})
		})

		Convey("When the tap is on the midpoint", func() {
			k, _ := c.Nearest(at(1250 * time.Millisecond))

			Convey("Then the earlier beat wins", func() {
				So(k, ShouldEqual, int64(2))
			})
		})

		Convey("When the tap is before the epoch", func() {
			k, when := c.Nearest(at(-time.Second))

			Convey("Then beat 0 is nearest", func() {
				So(k, ShouldEqual, int64(0))
				So(when.Equal(epoch), ShouldBeTrue)
			})
		})
	})
}

func TestPhase(t *testing.T) {
	Convey("Given a 120 bpm clock", t, func() {
		c := mustClock(120)

		So(c.Phase(at(0)), ShouldEqual, 0.0)
		So(c.Phase(at(125*time.Millisecond)), ShouldAlmostEqual, 0.25)
		So(c.Phase(at(1375*time.Millisecond)), ShouldAlmostEqual, 0.75)
	})
}

func TestUpcoming(t *testing.T) {
	Convey("Given a 120 bpm clock", t, func() {
		c := mustClock(120)

		Convey("When looking 1.1s ahead from 0.1s", func() {
			beats := c.Upcoming(at(100*time.Millisecond), 1100*time.Millisecond)

			Convey("Then beats 1 and 2 are returned", func() {
				So(beats, ShouldHaveLength, 2)
				So(beats[0].Equal(at(500*time.Millisecond)), ShouldBeTrue)
				So(beats[1].Equal(at(time.Second)), ShouldBeTrue)
			})
		})

		Convey("When now is exactly on a beat", func() {
			beats := c.Upcoming(at(time.Second), 500*time.Millisecond)

			Convey("Then both window edges are included", func() {
				So(beats, ShouldHaveLength, 2)
				So(beats[0].Equal(at(time.Second)), ShouldBeTrue)
				So(beats[1].Equal(at(1500*time.Millisecond)), ShouldBeTrue)
			})
		})

		Convey("When the lookahead is not positive", func() {
			So(c.Upcoming(at(time.Second), 0), ShouldBeEmpty)
			So(c.Upcoming(at(time.Second), -time.Second), ShouldBeEmpty)
		})

		Convey("When the lookahead is shorter than an interval", func() {
			So(c.Upcoming(at(100*time.Millisecond), 300*time.Millisecond), ShouldBeEmpty)
			So(c.Upcoming(at(300*time.Millisecond), 300*time.Millisecond), ShouldHaveLength, 1)
		})

		Convey("When now is before the epoch", func() {
			beats := c.Upcoming(at(-700*time.Millisecond), time.Second)

			Convey("Then the first beat is beat 0", func() {
				So(beats, ShouldHaveLength, 1)
				So(beats[0].Equal(epoch), ShouldBeTrue)
			})
		})

		Convey("When called twice with the same frame", func() {
			a := c.Upcoming(at(3*time.Second), 2*time.Second)
			b := c.Upcoming(at(3*time.Second), 2*time.Second)

			Convey("Then the sequence restarts from scratch", func() {
				So(b, ShouldResemble, a)
			})
		})

		Convey("When a buffer is reused", func() {
			buf := make([]time.Time, 0, 8)
			buf = c.AppendUpcoming(buf[:0], at(0), time.Second)
			So(buf, ShouldHaveLength, 3)
			buf = c.AppendUpcoming(buf[:0], at(2100*time.Millisecond), time.Second)

			Convey("Then only the latest frame is held", func() {
				So(buf, ShouldHaveLength, 2)
				So(buf[0].Equal(at(2500*time.Millisecond)), ShouldBeTrue)
			})
		})
	})

	Convey("Given a range of tempos and windows", t, func() {
		for _, bpm := range []float64{60, 97, 128, 174} {
			c := mustClock(bpm)
			i := c.Interval()

			for _, l := range []time.Duration{i / 3, i, 2 * time.Second} {
				for d := -i; d < 4*time.Second; d += 111 * time.Millisecond {
					now := at(d)
					beats := c.Upcoming(now, l)

					for n, b := range beats {
						So(b.Before(now), ShouldBeFalse)
						So(b.After(now.Add(l)), ShouldBeFalse)
						So(b.Sub(epoch)%i, ShouldEqual, time.Duration(0))
						if n > 0 {
							So(b.After(beats[n-1]), ShouldBeTrue)
						}
					}
				}
			}
		}
	})
}

func BenchmarkAppendUpcoming(b *testing.B) {
	c := mustClock(174)
	buf := make([]time.Time, 0, 16)
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		buf = c.AppendUpcoming(buf[:0], at(time.Duration(n)*time.Millisecond), 2*time.Second)
	}
}
