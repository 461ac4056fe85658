package animator

import (
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/savibeshop/savibe/internal/particles"
)

var _ = Describe("Animator", func() {
	var (
		clock *FakeClock
		anim  *Animator
		ctx   context.Context
		stop  context.CancelFunc
	)

	BeforeEach(func() {
		clock = NewFakeClock(time.Unix(0, 0))
		ctx, stop = context.WithCancel(context.Background())
		anim = New(Config{Count: 20, Palette: particles.DefaultPalette},
			WithClock(clock),
			WithSource(particles.NewSource(99)))
	})

	AfterEach(func() {
		anim.Stop()
		stop()
	})

	It("builds the field on construction without ticking", func() {
		Expect(anim.Field().Len()).To(Equal(20))
		Expect(anim.Ticks()).To(BeZero())
		Expect(anim.Running()).To(BeFalse())
		Expect(anim.Config().Interval).To(Equal(particles.TickInterval))
	})

	It("advances once per interval", func() {
		start := anim.Field()
		Expect(anim.Start(ctx)).To(Succeed())

		Expect(clock.Advance(3 * particles.TickInterval)).To(Equal(3))
		Eventually(anim.Ticks).Should(Equal(3))

		want := particles.AdvanceN(start, 3)
		Expect(anim.Field().Particles).To(Equal(want.Particles))
	})

	It("rejects a second Start", func() {
		Expect(anim.Start(ctx)).To(Succeed())
		Expect(anim.Start(ctx)).To(MatchError(ErrAlreadyRunning))
	})

	It("never advances after Stop", func() {
		Expect(anim.Start(ctx)).To(Succeed())
		clock.Advance(2 * particles.TickInterval)
		Eventually(anim.Ticks).Should(Equal(2))

		anim.Stop()
		Expect(anim.Running()).To(BeFalse())
		Expect(clock.Active()).To(BeZero())

		Expect(clock.Advance(time.Second)).To(BeZero())
		Consistently(anim.Ticks, 50*time.Millisecond).Should(Equal(2))
	})

	It("tolerates repeated Stop", func() {
		anim.Stop()
		Expect(anim.Start(ctx)).To(Succeed())
		anim.Stop()
		anim.Stop()
		Expect(anim.Running()).To(BeFalse())
	})

	It("stops when its context is canceled", func() {
		Expect(anim.Start(ctx)).To(Succeed())
		stop()
		Eventually(anim.Running).Should(BeFalse())
		Expect(clock.Advance(time.Second)).To(BeZero())
		Expect(anim.Ticks()).To(BeZero())
	})

	It("can be restarted after Stop", func() {
		Expect(anim.Start(ctx)).To(Succeed())
		anim.Stop()
		Expect(anim.Start(ctx)).To(Succeed())
		clock.Advance(particles.TickInterval)
		Eventually(anim.Ticks).Should(Equal(1))
	})

	Describe("Reinitialize", func() {
		It("replaces the field and keeps a single ticker", func() {
			old := anim.Field()
			Expect(anim.Start(ctx)).To(Succeed())
			clock.Advance(particles.TickInterval)
			Eventually(anim.Ticks).Should(Equal(1))

			Expect(anim.Reinitialize(35, particles.Palette{"#000000"})).To(Succeed())

			f := anim.Field()
			Expect(f.Len()).To(Equal(35))
			Expect(f.Generation).To(Equal(old.Generation + 1))
			Expect(anim.Ticks()).To(BeZero())
			Expect(anim.Running()).To(BeTrue())
			Expect(clock.Active()).To(Equal(1))

			for _, r := range f.Refs() {
				Expect(old.Refs()).NotTo(ContainElement(r))
			}
			for _, p := range f.Particles {
				Expect(p.Color).To(Equal(particles.Color("#000000")))
			}

			clock.Advance(particles.TickInterval)
			Eventually(anim.Ticks).Should(Equal(1))
		})

		It("leaves a stopped animator stopped", func() {
			Expect(anim.Reinitialize(5, particles.DefaultPalette)).To(Succeed())
			Expect(anim.Running()).To(BeFalse())
			Expect(anim.Field().Len()).To(Equal(5))
			Expect(clock.Active()).To(BeZero())
		})

		It("accepts an empty field", func() {
			Expect(anim.Reinitialize(0, particles.DefaultPalette)).To(Succeed())
			Expect(anim.Step(10).Len()).To(BeZero())
		})

		DescribeTable("rejects counts outside [0, MaxCount] and keeps ticking",
			func(count int) {
				old := anim.Field()
				Expect(anim.Start(ctx)).To(Succeed())

				Expect(anim.Reinitialize(count, particles.DefaultPalette)).To(MatchError(ErrCount))
				Expect(anim.Field().Generation).To(Equal(old.Generation))
				Expect(anim.Running()).To(BeTrue())

				clock.Advance(particles.TickInterval)
				Eventually(anim.Ticks).Should(Equal(1))
			},
			Entry("negative", -1),
			Entry("one above the ceiling", particles.MaxCount+1),
			Entry("huge", 1<<62),
		)
	})

	It("notifies observers after each tick", func() {
		var (
			mu   sync.Mutex
			seen []int
		)
		anim = New(Config{Count: 4, Palette: particles.DefaultPalette},
			WithClock(clock),
			WithObserver(func(f particles.Field) {
				mu.Lock()
				defer mu.Unlock()
				seen = append(seen, f.Len())
			}))
		Expect(anim.Start(ctx)).To(Succeed())
		clock.Advance(2 * particles.TickInterval)

		Eventually(func() []int {
			mu.Lock()
			defer mu.Unlock()
			return append([]int(nil), seen...)
		}).Should(Equal([]int{4, 4}))
	})

	It("hands observers the new generation on Reinitialize", func() {
		var gens []uint64
		anim = New(Config{Count: 4, Palette: particles.DefaultPalette},
			WithClock(clock),
			WithObserver(func(f particles.Field) { gens = append(gens, f.Generation) }))

		Expect(anim.Reinitialize(4, particles.Palette{"#FFFFFF"})).To(Succeed())
		Expect(gens).To(Equal([]uint64{2}))
	})
})

var _ = Describe("FakeClock", func() {
	It("fires nothing before the first period", func() {
		c := NewFakeClock(time.Unix(0, 0))
		t := c.NewTicker(time.Second)
		go func() {
			for range t.C() {
			}
		}()
		Expect(c.Advance(999 * time.Millisecond)).To(BeZero())
		Expect(c.Advance(time.Millisecond)).To(Equal(1))
		Expect(c.Now()).To(Equal(time.Unix(1, 0)))
		t.Stop()
		Expect(c.Advance(time.Hour)).To(BeZero())
	})
})
