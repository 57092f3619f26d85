package phys

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/planar/internal/vect"
)

var _ = Describe("sleep islands", func() {
	var space *Space

	newBody := func() *Body {
		b, err := NewBody(1, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(space.AddBody(b)).To(Succeed())
		return b
	}

	BeforeEach(func() {
		space = NewSpace()
		space.Gravity = vect.Vect{Y: -10}
	})

	Describe("Sleep", func() {
		It("creates a singleton island and leaves the container set", func() {
			b := newBody()
			Expect(b.Sleep()).To(Succeed())

			Expect(b.IsSleeping()).To(BeTrue())
			Expect(space.ActiveCount()).To(BeZero())
			Expect(space.SleepingCount()).To(Equal(1))
			Expect(b.Space()).To(Equal(space), "sleeping should not detach the body")
		})

		It("is a no-op on an already sleeping body", func() {
			b := newBody()
			Expect(b.Sleep()).To(Succeed())
			root := b.componentRoot()

			Expect(b.Sleep()).To(Succeed())
			Expect(b.componentRoot()).To(Equal(root))
		})

		It("rejects static bodies", func() {
			Expect(space.StaticBody().Sleep()).To(MatchError(ErrStaticBody))
		})

		It("preserves velocity through a sleep/wake cycle", func() {
			b := newBody()
			b.SetVelocity(vect.Vect{X: 3})
			Expect(b.Sleep()).To(Succeed())
			b.Activate()
			Expect(b.Velocity()).To(Equal(vect.Vect{X: 3}))
		})
	})

	Describe("SleepWithGroup", func() {
		It("rejects an awake group body without changing the caller", func() {
			a := newBody()
			b := newBody()

			Expect(b.SleepWithGroup(a)).To(MatchError(ErrInvalidGroupState))
			Expect(b.IsSleeping()).To(BeFalse())
			Expect(space.ActiveCount()).To(Equal(2))
		})

		It("shares one island so any member wakes all", func() {
			a := newBody()
			b := newBody()
			c := newBody()

			Expect(a.Sleep()).To(Succeed())
			Expect(b.SleepWithGroup(a)).To(Succeed())
			Expect(c.SleepWithGroup(b)).To(Succeed())
			Expect(space.ActiveCount()).To(BeZero())

			b.Activate()

			Expect(a.IsSleeping()).To(BeFalse())
			Expect(b.IsSleeping()).To(BeFalse())
			Expect(c.IsSleeping()).To(BeFalse())
			Expect(space.ActiveCount()).To(Equal(3))
		})

		It("refuses to move a sleeping body between islands", func() {
			a := newBody()
			b := newBody()

			Expect(a.Sleep()).To(Succeed())
			Expect(b.Sleep()).To(Succeed())

			Expect(b.SleepWithGroup(a)).To(MatchError(ErrInvalidGroupState))
			Expect(b.IsSleeping()).To(BeTrue())
		})
	})

	Describe("Activate", func() {
		It("resets the idle timer of an awake body", func() {
			space.SleepTimeThreshold = 10
			b := newBody()
			space.Gravity = vect.Zero
			space.Step(1.0 / 60)
			Expect(b.IdleTime()).To(BeNumerically(">", 0))

			b.Activate()
			Expect(b.IdleTime()).To(BeZero())
		})

		It("resets idle timers of touching bodies", func() {
			a := newBody()
			b := newBody()
			sa := NewCircle(a, 1, vect.Zero)
			sb := NewCircle(b, 1, vect.Zero)
			Expect(space.AddShape(sa)).To(Succeed())
			Expect(space.AddShape(sb)).To(Succeed())
			_, err := space.Touch(sa, sb)
			Expect(err).NotTo(HaveOccurred())

			b.node.idleTime = 5
			a.Activate()
			Expect(b.IdleTime()).To(BeZero())
		})
	})

	Describe("ActivateStatic", func() {
		var ground *Body
		var groundShape *Shape
		var a, b *Body

		BeforeEach(func() {
			ground = space.StaticBody()
			groundShape = NewCircle(ground, 100, vect.Zero)
			Expect(space.AddShape(groundShape)).To(Succeed())

			a = newBody()
			b = newBody()
			sa := NewCircle(a, 1, vect.Zero)
			sb := NewCircle(b, 1, vect.Zero)
			Expect(space.AddShape(sa)).To(Succeed())
			Expect(space.AddShape(sb)).To(Succeed())

			_, err := space.Touch(groundShape, sa)
			Expect(err).NotTo(HaveOccurred())
			_, err = space.Touch(groundShape, sb)
			Expect(err).NotTo(HaveOccurred())

			Expect(a.Sleep()).To(Succeed())
			Expect(b.SleepWithGroup(a)).To(Succeed())
		})

		It("wakes every touching dynamic body", func() {
			ground.ActivateStatic(nil)
			Expect(a.IsSleeping()).To(BeFalse())
			Expect(b.IsSleeping()).To(BeFalse())
		})

		It("respects the shape filter", func() {
			c, err := NewBody(1, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(space.AddBody(c)).To(Succeed())
			sc := NewCircle(c, 1, vect.Zero)
			Expect(space.AddShape(sc)).To(Succeed())
			_, err = space.Touch(groundShape, sc)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Sleep()).To(Succeed())

			ground.ActivateStatic(sc)
			Expect(c.IsSleeping()).To(BeFalse())
			Expect(a.IsSleeping()).To(BeTrue(), "bodies in other islands stay asleep")
			Expect(b.IsSleeping()).To(BeTrue())
		})

		It("never puts the static body itself to sleep or awake states", func() {
			Expect(ground.IsStatic()).To(BeTrue())
			Expect(ground.IsSleeping()).To(BeFalse())
			Expect(math.IsInf(ground.IdleTime(), 1)).To(BeTrue())
		})
	})

	Describe("rogue bodies", func() {
		It("can sleep and wake without container scheduling effects", func() {
			rogue, err := NewBody(1, 1)
			Expect(err).NotTo(HaveOccurred())

			Expect(rogue.Sleep()).To(Succeed())
			Expect(rogue.IsSleeping()).To(BeTrue())

			rogue.Activate()
			Expect(rogue.IsSleeping()).To(BeFalse())
		})

		It("can join an island owned by a spaced body", func() {
			a := newBody()
			rogue, err := NewBody(1, 1)
			Expect(err).NotTo(HaveOccurred())

			Expect(a.Sleep()).To(Succeed())
			Expect(rogue.SleepWithGroup(a)).To(Succeed())

			rogue.Activate()
			Expect(a.IsSleeping()).To(BeFalse())
		})
	})
})
