package eyes_test

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/googly/internal/eyes"
	"github.com/san-kum/googly/internal/scene"
)

var _ = Describe("Rig", func() {
	var rig *eyes.Rig

	BeforeEach(func() {
		var err error
		rig, err = eyes.NewRig(eyes.Options{EyeRadius: 0.25, EyeSpacing: 0.7, InwardRotation: 0.1})
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("places the sockets symmetrically about the rig origin", func() {
			Expect(rig.Left().Socket.Position()).To(Equal(mgl64.Vec3{-0.35, 0, 0}))
			Expect(rig.Right().Socket.Position()).To(Equal(mgl64.Vec3{0.35, 0, 0}))
		})

		It("turns the sockets inward by opposite angles", func() {
			l, r := rig.Left().Socket.Rotation(), rig.Right().Socket.Rotation()
			Expect(l.W).To(Equal(r.W))
			Expect(l.V[1]).To(Equal(-r.V[1]))
			Expect(l.V[1]).To(BeNumerically(">", 0))
			Expect(l.V[0]).To(BeZero())
			Expect(l.V[2]).To(BeZero())
		})

		It("builds the socket hierarchy under a single group", func() {
			root := rig.Node()
			Expect(root.Children()).To(ConsistOf(rig.Left().Socket, rig.Right().Socket))
			for _, e := range []eyes.Eye{rig.Left(), rig.Right()} {
				Expect(e.Socket.Children()).To(ConsistOf(e.Iris, e.Cap))
				Expect(e.Physics.Target()).To(BeIdenticalTo(e.Iris))
			}
		})

		It("defaults the iris to half the eye radius", func() {
			o := rig.Options()
			Expect(o.IrisRadius).To(Equal(0.125))
			Expect(rig.Left().Physics.MaxOffset()).To(Equal(0.125))
			Expect(o.WidthSegments).To(Equal(eyes.DefaultWidthSegments))
			Expect(o.HeightSegments).To(Equal(eyes.DefaultHeightSegments))
		})

		It("shares geometry between the left and right meshes", func() {
			Expect(rig.Left().Socket.Mesh().Geometry).To(BeIdenticalTo(rig.Right().Socket.Mesh().Geometry))
			Expect(rig.Left().Iris.Mesh().Geometry).To(BeIdenticalTo(rig.Right().Iris.Mesh().Geometry))
			Expect(rig.Left().Cap.Mesh().Geometry).To(BeIdenticalTo(rig.Right().Cap.Mesh().Geometry))
		})

		It("flattens each mesh along the forward axis", func() {
			_, hi := rig.Left().Socket.Mesh().Geometry.Bounds()
			lo, _ := rig.Left().Socket.Mesh().Geometry.Bounds()
			Expect(hi[2]).To(BeNumerically("<=", 0.25*0.05+1e-9))
			Expect(lo[2]).To(BeNumerically(">=", -1e-9))

			_, capHi := rig.Left().Cap.Mesh().Geometry.Bounds()
			Expect(capHi[2]).To(BeNumerically("~", 0.25*0.25, 1e-9))
		})

		It("starts with the default physics tunables", func() {
			Expect(rig.Gravity()).To(Equal(eyes.DefaultGravity))
			Expect(rig.Damping()).To(Equal(eyes.DefaultDamping))
		})

		It("fills unset options from defaults", func() {
			r, err := eyes.NewRig(eyes.Options{})
			Expect(err).NotTo(HaveOccurred())
			o := r.Options()
			Expect(o.EyeRadius).To(Equal(eyes.DefaultEyeRadius))
			Expect(o.EyeSpacing).To(Equal(eyes.DefaultEyeSpacing))
			Expect(o.InwardRotation).To(BeZero())
			Expect(r.WhiteMaterial().Kind).To(Equal(scene.KindStandard))
		})
	})

	Describe("materials", func() {
		It("invokes the factory once per material with fixed styling", func() {
			var calls []scene.MaterialParams
			factory := func(p scene.MaterialParams) *scene.Material {
				calls = append(calls, p)
				return scene.NewBasicMaterial(p)
			}
			r, err := eyes.NewRig(eyes.Options{MaterialFactory: factory})
			Expect(err).NotTo(HaveOccurred())

			Expect(calls).To(HaveLen(3))
			Expect(calls[0].Color).To(Equal(uint32(0xffffff)))
			Expect(calls[1].Color).To(Equal(uint32(0x050505)))
			Expect(calls[2].Transparent).To(BeTrue())
			Expect(calls[2].Blending).To(Equal(scene.AdditiveBlending))
			Expect(r.TransparentMaterial().Kind).To(Equal(scene.KindBasic))
		})

		It("shares one material instance across both eyes", func() {
			Expect(rig.Left().Socket.Material()).To(BeIdenticalTo(rig.WhiteMaterial()))
			Expect(rig.Right().Socket.Material()).To(BeIdenticalTo(rig.WhiteMaterial()))
			Expect(rig.Left().Iris.Material()).To(BeIdenticalTo(rig.IrisMaterial()))
			Expect(rig.Right().Cap.Material()).To(BeIdenticalTo(rig.TransparentMaterial()))
		})

		It("propagates a new white material to both sockets", func() {
			m := scene.NewStandardMaterial(scene.MaterialParams{Color: 0xffeeee})
			rig.SetWhiteMaterial(m)
			Expect(rig.WhiteMaterial()).To(BeIdenticalTo(m))
			Expect(rig.Left().Socket.Material()).To(BeIdenticalTo(m))
			Expect(rig.Right().Socket.Material()).To(BeIdenticalTo(m))
		})

		It("propagates new iris and transparent materials", func() {
			iris := scene.NewStandardMaterial(scene.MaterialParams{Color: 0x0000ff})
			glass := scene.NewBasicMaterial(scene.MaterialParams{Transparent: true})
			rig.SetIrisMaterial(iris)
			rig.SetTransparentMaterial(glass)

			for _, e := range []eyes.Eye{rig.Left(), rig.Right()} {
				Expect(e.Iris.Material()).To(BeIdenticalTo(iris))
				Expect(e.Cap.Material()).To(BeIdenticalTo(glass))
			}
			Expect(rig.IrisMaterial()).To(BeIdenticalTo(iris))
			Expect(rig.TransparentMaterial()).To(BeIdenticalTo(glass))
		})
	})

	Describe("Update", func() {
		It("drives both irises down under gravity", func() {
			for i := 0; i < 600; i++ {
				Expect(rig.Update(frameDt)).To(Succeed())
			}
			for _, e := range []eyes.Eye{rig.Left(), rig.Right()} {
				Expect(e.Iris.Position()[1]).To(BeNumerically("~", -e.Physics.MaxOffset(), tol))
			}
		})

		It("applies updated tunables to both eyes identically", func() {
			rig.SetGravity(0)
			rig.SetDamping(0.5)
			Expect(rig.Gravity()).To(BeZero())
			Expect(rig.Damping()).To(Equal(0.5))

			for i := 0; i < 10; i++ {
				Expect(rig.Update(frameDt)).To(Succeed())
			}
			Expect(rig.Left().Iris.Position().Len()).To(BeNumerically("<", 1e-9))
			Expect(rig.Right().Iris.Position().Len()).To(BeNumerically("<", 1e-9))
		})

		It("collapses both irises when the iris fills the socket", func() {
			r, err := eyes.NewRig(eyes.Options{EyeRadius: 0.1, IrisRadius: 0.1})
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Update(frameDt)).To(Succeed())
			Expect(r.Left().Iris.Position()).To(Equal(mgl64.Vec3{}))
			Expect(r.Right().Iris.Position()).To(Equal(mgl64.Vec3{}))
		})

		It("reports which eye lost its socket", func() {
			rig.Right().Iris.RemoveFromParent()
			err := rig.Update(frameDt)
			Expect(errors.Is(err, eyes.ErrDetached)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("right eye"))
		})

		It("follows the host model when it is attached and moved", func() {
			head := scene.NewGroup("head")
			Expect(head.AddChild(rig.Node())).To(Succeed())
			rig.SetGravity(0)
			rig.SetDamping(0)

			head.Translate(mgl64.Vec3{0.05, 0, 0})
			Expect(rig.Update(frameDt)).To(Succeed())
			Expect(rig.Left().Iris.Position()[0]).To(BeNumerically("<", 0))
			Expect(rig.Right().Iris.Position()[0]).To(BeNumerically("<", 0))
		})

		It("rests the irises on Reset", func() {
			for i := 0; i < 3; i++ {
				Expect(rig.Update(frameDt)).To(Succeed())
			}
			rig.Reset()
			Expect(rig.Left().Physics.Velocity().Len()).To(BeZero())
			Expect(rig.Right().Physics.Velocity().Len()).To(BeZero())
		})
	})

	Describe("Options", func() {
		It("derives the clamp radius", func() {
			Expect(eyes.DefaultOptions().MaxOffset()).To(BeNumerically("~", 0.01, 1e-12))
			Expect(eyes.Options{EyeRadius: 1, IrisRadius: 0.25}.MaxOffset()).To(Equal(0.75))
		})
	})
})
