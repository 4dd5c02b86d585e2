package eyes_test

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/googly/internal/eyes"
	"github.com/san-kum/googly/internal/scene"
)

const (
	tol     = 1e-6
	frameDt = 1.0 / 60.0
)

func planar(v mgl64.Vec3) float64 { return math.Hypot(v[0], v[1]) }

// newSocket returns a socket under a head group with an iris attached at
// the socket origin.
func newSocket(yaw float64) (head, socket, iris *scene.Node) {
	head = scene.NewGroup("head")
	socket = scene.NewGroup("socket")
	socket.SetPosition(mgl64.Vec3{0.5, 0, 0})
	socket.SetRotationY(yaw)
	iris = scene.NewGroup("iris")
	Expect(head.AddChild(socket)).To(Succeed())
	Expect(socket.AddChild(iris)).To(Succeed())
	return head, socket, iris
}

// residualAfter releases the iris from the side of the clamp circle and
// returns its distance from the bottom after n updates plus residual speed.
func residualAfter(damping float64, n int) float64 {
	_, _, iris := newSocket(0)
	iris.SetPosition(mgl64.Vec3{0.5, 0, 0})
	p, err := eyes.NewParticle(iris, 1.0, 0.5)
	Expect(err).NotTo(HaveOccurred())

	for i := 0; i < n; i++ {
		Expect(p.Update(frameDt, 0.981, damping)).To(Succeed())
	}
	rest := mgl64.Vec3{0, -0.5, 0}
	return iris.Position().Sub(rest).Len() + p.Velocity().Len()
}

var _ = Describe("Particle", func() {
	Describe("construction", func() {
		It("starts at rest at the target's world position", func() {
			_, socket, iris := newSocket(0.1)
			iris.SetPosition(mgl64.Vec3{0.1, 0.05, 0})

			p, err := eyes.NewParticle(iris, 0.02, 0.01)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.MaxOffset()).To(BeNumerically("~", 0.01, 1e-12))
			Expect(p.WorldPosition().ApproxEqualThreshold(socket.LocalToWorld(iris.Position()), 1e-12)).To(BeTrue())
			Expect(p.Velocity().Len()).To(BeZero())
			Expect(p.Target()).To(BeIdenticalTo(iris))
		})

		It("rejects a target without a parent", func() {
			_, err := eyes.NewParticle(scene.NewGroup("loose"), 0.02, 0.01)
			Expect(err).To(MatchError(eyes.ErrDetached))

			_, err = eyes.NewParticle(nil, 0.02, 0.01)
			Expect(err).To(MatchError(eyes.ErrDetached))
		})
	})

	Describe("Update", func() {
		It("fails without mutating state once the iris is detached", func() {
			_, socket, iris := newSocket(0)
			p, err := eyes.NewParticle(iris, 0.02, 0.01)
			Expect(err).NotTo(HaveOccurred())

			Expect(socket.RemoveChild(iris)).To(Succeed())
			before := p.WorldPosition()
			Expect(p.Update(frameDt, 0.981, 0.01)).To(MatchError(eyes.ErrDetached))
			Expect(p.WorldPosition()).To(Equal(before))
		})

		It("keeps the iris flat and inside the clamp circle", func() {
			head, _, iris := newSocket(0.3)
			head.SetEulerRotation(0.2, 0.4, -0.3)
			p, err := eyes.NewParticle(iris, 0.02, 0.008)
			Expect(err).NotTo(HaveOccurred())

			rng := rand.New(rand.NewSource(7))
			for i := 0; i < 2000; i++ {
				head.SetPosition(mgl64.Vec3{rng.Float64() - 0.5, rng.Float64() - 0.5, rng.Float64() - 0.5})
				head.SetEulerRotation(rng.Float64(), rng.Float64(), rng.Float64())
				dt := rng.Float64() * 0.1
				Expect(p.Update(dt, rng.Float64()*5, rng.Float64())).To(Succeed())

				local := iris.Position()
				Expect(local[2]).To(BeZero())
				Expect(planar(local)).To(BeNumerically("<=", p.MaxOffset()+tol))
			}
		})

		It("stays at the centre with no gravity and no damping", func() {
			_, _, iris := newSocket(0.1)
			p, err := eyes.NewParticle(iris, 0.02, 0.01)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 1000; i++ {
				Expect(p.Update(frameDt, 0, 0)).To(Succeed())
			}
			Expect(iris.Position().Len()).To(BeNumerically("<", 1e-9))
		})

		It("settles at the lowest point of the clamp circle under gravity", func() {
			_, _, iris := newSocket(0.1)
			p, err := eyes.NewParticle(iris, 0.02, 0.01)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 2000; i++ {
				Expect(p.Update(frameDt, 0.981, 0.1)).To(Succeed())
			}
			local := iris.Position()
			Expect(planar(local)).To(BeNumerically("~", p.MaxOffset(), tol))
			Expect(local[1]).To(BeNumerically("~", -p.MaxOffset(), tol))
			Expect(local[0]).To(BeNumerically("~", 0, tol))
		})

		It("comes to rest sooner with more damping", func() {
			const steps = 300
			low := residualAfter(0.02, steps)
			high := residualAfter(0.1, steps)
			Expect(high).To(BeNumerically("<", low))
		})

		It("pins the iris at the socket origin when the iris fills the socket", func() {
			_, _, iris := newSocket(0)
			iris.SetPosition(mgl64.Vec3{0.3, 0.3, 0.3})
			p, err := eyes.NewParticle(iris, 0.02, 0.02)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.MaxOffset()).To(BeZero())

			for _, g := range []float64{0, 0.981, 50} {
				Expect(p.Update(frameDt, g, 0.5)).To(Succeed())
				Expect(iris.Position()).To(Equal(mgl64.Vec3{}))
			}
		})

		It("collapses to the origin when the iris is larger than the socket", func() {
			_, _, iris := newSocket(0)
			p, err := eyes.NewParticle(iris, 0.01, 0.02)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Update(frameDt, 0.981, 0.01)).To(Succeed())
			Expect(iris.Position()).To(Equal(mgl64.Vec3{}))
		})

		It("responds to the head moving sideways", func() {
			head, _, iris := newSocket(0)
			p, err := eyes.NewParticle(iris, 1.0, 0.5)
			Expect(err).NotTo(HaveOccurred())

			// The iris keeps its world position for a frame, so in the
			// socket frame it appears to lag behind the motion.
			head.Translate(mgl64.Vec3{0.2, 0, 0})
			Expect(p.Update(frameDt, 0, 0)).To(Succeed())
			Expect(iris.Position()[0]).To(BeNumerically("~", -0.2, 1e-9))
		})

		It("resets to rest at the current node position", func() {
			_, _, iris := newSocket(0)
			p, err := eyes.NewParticle(iris, 1.0, 0.5)
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < 5; i++ {
				Expect(p.Update(frameDt, 0.981, 0)).To(Succeed())
			}
			Expect(p.Velocity().Len()).To(BeNumerically(">", 0))

			p.Reset()
			Expect(p.Velocity().Len()).To(BeZero())
			Expect(p.WorldPosition().ApproxEqualThreshold(iris.WorldPosition(), 1e-12)).To(BeTrue())
		})
	})
})
