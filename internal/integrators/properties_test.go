package integrators_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fluxsim/internal/field"
	"github.com/san-kum/fluxsim/internal/initial"
	"github.com/san-kum/fluxsim/internal/integrators"
	"github.com/san-kum/fluxsim/internal/potentials"
)

func build(g *field.Grid, p field.Params, terms []field.Term, c initial.Condition) *integrators.Leapfrog {
	prev, curr, err := c.Build(g, p.Dt)
	Expect(err).NotTo(HaveOccurred())
	l, err := integrators.NewLeapfrog(g, p, terms, prev, curr)
	Expect(err).NotTo(HaveOccurred())
	return l
}

var _ = Describe("Leapfrog", func() {
	Describe("free equation", func() {
		It("keeps a uniform field uniform under uniform velocity", func() {
			g, err := field.NewGrid(8, 12, 10, 6)
			Expect(err).NotTo(HaveOccurred())
			p := field.Params{Mass: 0, Coupling: 0, Dt: 0.01}
			l := build(g, p, nil, initial.Uniform{Amplitude: 0.5, Velocity: 0.2})

			out, err := l.Run(250)
			Expect(err).NotTo(HaveOccurred())
			for _, v := range out {
				Expect(v).To(Equal(out[0]))
			}
			Expect(out[0]).To(BeNumerically("~", 0.5+0.2*2.5, 1e-9))
		})
	})

	Describe("time reversal", func() {
		It("recovers the previous snapshot when stepped back with negated dt", func() {
			g, _ := field.NewGrid(15, 24, 24)
			p := field.Params{Mass: 1, Coupling: 1, Dt: 0.01}
			terms := []field.Term{potentials.NewGravity(-1), potentials.NewRotation(-0.8), potentials.NewBarrier(-2, 1)}
			prev, curr, _ := initial.Rotating{Harmonic: 4}.Build(g, p.Dt)
			for k := range prev {
				prev[k] *= 0.98
			}

			fwd, err := integrators.NewLeapfrog(g, p, terms, prev, curr)
			Expect(err).NotTo(HaveOccurred())
			Expect(fwd.Step()).To(Succeed())
			next := fwd.Current()

			p.Dt = -p.Dt
			back, err := integrators.NewLeapfrog(g, p, terms, next, curr)
			Expect(err).NotTo(HaveOccurred())
			Expect(back.Step()).To(Succeed())

			got := back.Current()
			for k := range prev {
				Expect(got[k]).To(BeNumerically("~", prev[k], 1e-12))
			}
		})
	})

	Describe("determinism", func() {
		It("produces bit-identical output for identical inputs", func() {
			g, _ := field.NewGrid(15, 40, 40)
			p := field.Params{Mass: 1, Coupling: 1, Dt: 0.01}
			mk := func() []field.Term {
				return []field.Term{potentials.NewGravity(-1), potentials.NewRotation(-0.8)}
			}

			a, err := build(g, p, mk(), initial.Rotating{Harmonic: 4}).Run(60)
			Expect(err).NotTo(HaveOccurred())
			b, err := build(g, p, mk(), initial.Rotating{Harmonic: 4}).Run(60)
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(Equal(b))
		})
	})

	Describe("dimensional consistency", func() {
		It("matches a 1D run for a y-independent 2D field", func() {
			p := field.Params{Mass: 1, Coupling: 1, Dt: 0.01}
			terms := []field.Term{potentials.NewAtomic(-0.5)}
			kink := initial.Kink{Velocity: 0.3}

			g1, _ := field.NewGrid(20, 64)
			g2, _ := field.NewGrid(20, 64, 8)

			one, err := build(g1, p, terms, kink).Run(120)
			Expect(err).NotTo(HaveOccurred())
			two, err := build(g2, p, terms, kink).Run(120)
			Expect(err).NotTo(HaveOccurred())

			for k, v := range two {
				Expect(v).To(BeNumerically("~", one[g2.Coord(k, 0)], 1e-12))
			}
		})
	})

	Describe("kink soliton", func() {
		var (
			g   *field.Grid
			out field.Field
		)

		BeforeEach(func() {
			var err error
			g, err = field.NewGrid(20, 200)
			Expect(err).NotTo(HaveOccurred())
			l := build(g, field.Params{Mass: 1, Coupling: 1, Dt: 0.01}, nil, initial.Kink{Velocity: 0.3})
			out, err = l.Run(500)
			Expect(err).NotTo(HaveOccurred())
		})

		It("stays bounded away from the periodic seam", func() {
			// The tanh profile jumps from +1 to -1 across the seam at |x| = L/2;
			// the front radiated from it has not reached |x| < 5 by t = 5.
			x := g.Coords(0)
			for i, v := range out {
				if math.Abs(x[i]) < 5 {
					Expect(v).To(BeNumerically(">=", -1.2))
					Expect(v).To(BeNumerically("<=", 1.2))
				}
			}
			Expect(out.IsValid()).To(BeTrue())
			Expect(out.MaxAbs()).To(BeNumerically("<", 2))
		})

		It("neither collapses nor loses its orientation", func() {
			x := g.Coords(0)
			pos, neg := 0.0, 0.0
			for i, v := range out {
				if x[i] > 0 {
					pos += v
				} else {
					neg += v
				}
			}
			Expect(pos / 100).To(BeNumerically(">", 0.3))
			Expect(neg / 100).To(BeNumerically("<", -0.3))
		})

		It("remains approximately odd about x = 0", func() {
			n := len(out)
			worst := 0.0
			for i := range out {
				worst = math.Max(worst, math.Abs(out[i]+out[n-1-i]))
			}
			Expect(worst / out.MaxAbs()).To(BeNumerically("<", 0.15))
		})
	})

	Describe("barrier term", func() {
		It("contributes nothing directly where |x| >= 1", func() {
			g, _ := field.NewGrid(10, 20, 9, 9)
			p := field.Params{Mass: 1, Coupling: 1, Dt: 0.01}
			wave := initial.Wave{Offset: 2, WaveNumber: 6}
			withBarrier := []field.Term{potentials.NewAtomic(-2), potentials.NewBarrier(-2, 1)}
			baseOnly := []field.Term{potentials.NewAtomic(-2)}

			l := build(g, p, withBarrier, wave)
			x := g.Mesh(0)
			for step := 0; step < 30; step++ {
				ref, err := integrators.NewLeapfrog(g, p, baseOnly, l.Previous(), l.Current())
				Expect(err).NotTo(HaveOccurred())

				got, want := l.Source(), ref.Source()
				for k := range got {
					if math.Abs(x[k]) >= 1 {
						Expect(got[k]).To(Equal(want[k]))
					}
				}
				Expect(l.Step()).To(Succeed())
			}
		})
	})
})
