package surface_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/BjarneSeger/walk-bg/internal/surface"
)

func allZero(buf []byte) bool {
	for _, b := range buf {
		if b != 0 {
			return false
		}
	}
	return true
}

var _ = Describe("Surface", func() {
	var (
		sess *surface.NullSession
		surf *surface.Surface
	)

	BeforeEach(func() {
		sess = surface.NewNullSession()
		var err error
		surf, err = surface.New(sess)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(surf.Close()).To(Succeed())
	})

	It("starts unconfigured", func() {
		Expect(surf.State()).To(Equal(surface.StateUnconfigured))
		_, err := surf.AcquireDrawable()
		Expect(err).To(MatchError(surface.ErrNotConfigured))
		Expect(surf.Submit()).To(MatchError(surface.ErrNoDrawable))
	})

	Describe("Configure", func() {
		It("stores the negotiated dimensions", func() {
			w, h, err := surf.Configure(640, 480)
			Expect(err).NotTo(HaveOccurred())
			Expect(w).To(Equal(640))
			Expect(h).To(Equal(480))
			Expect(surf.State()).To(Equal(surface.StateConfigured))
			Expect(surf.Stride()).To(Equal(640 * 4))
		})

		It("falls back to 1920x1080 when the compositor sends zero", func() {
			w, h, err := surf.Configure(0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(w).To(Equal(1920))
			Expect(h).To(Equal(1080))
		})
	})

	Describe("AcquireDrawable", func() {
		BeforeEach(func() {
			_, _, err := surf.Configure(64, 48)
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns a zeroed region sized to the dimensions", func() {
			buf, err := surf.AcquireDrawable()
			Expect(err).NotTo(HaveOccurred())
			Expect(buf).To(HaveLen(64 * 4 * 48))
			Expect(allZero(buf)).To(BeTrue())
		})

		It("reuses the mapping across frames", func() {
			a, err := surf.AcquireDrawable()
			Expect(err).NotTo(HaveOccurred())
			b, err := surf.AcquireDrawable()
			Expect(err).NotTo(HaveOccurred())
			Expect(&a[0]).To(BeIdenticalTo(&b[0]))
		})

		It("zeroes the region again after a reconfigure", func() {
			buf, err := surf.AcquireDrawable()
			Expect(err).NotTo(HaveOccurred())
			buf[0] = 0xAB
			_, _, err = surf.Configure(64, 48)
			Expect(err).NotTo(HaveOccurred())
			buf, err = surf.AcquireDrawable()
			Expect(err).NotTo(HaveOccurred())
			Expect(allZero(buf)).To(BeTrue())
		})
	})

	Describe("Submit", func() {
		BeforeEach(func() {
			_, _, err := surf.Configure(64, 48)
			Expect(err).NotTo(HaveOccurred())
		})

		It("requires an acquired drawable", func() {
			Expect(surf.Submit()).To(MatchError(surface.ErrNoDrawable))
		})

		It("creates the pool and buffer, then attaches, damages and commits", func() {
			_, err := surf.AcquireDrawable()
			Expect(err).NotTo(HaveOccurred())
			Expect(surf.Submit()).To(Succeed())

			Expect(sess.Pools).To(HaveLen(1))
			Expect(sess.Pools[0].Size).To(Equal(int32(64 * 4 * 48)))
			Expect(sess.Pools[0].Buffers).To(HaveLen(1))

			buf := sess.Pools[0].Buffers[0]
			Expect(buf.Width).To(Equal(int32(64)))
			Expect(buf.Height).To(Equal(int32(48)))
			Expect(buf.Stride).To(Equal(int32(64 * 4)))
			Expect(buf.Format).To(Equal(surface.FormatARGB8888))

			Expect(sess.Attached).To(HaveLen(1))
			Expect(sess.Damaged).To(Equal([][2]int32{{64, 48}}))
			Expect(sess.Commits).To(Equal(1))
			Expect(surf.State()).To(Equal(surface.StatePresenting))
		})

		It("reuses the pool and buffer across frames", func() {
			for i := 0; i < 3; i++ {
				_, err := surf.AcquireDrawable()
				Expect(err).NotTo(HaveOccurred())
				Expect(surf.Submit()).To(Succeed())
			}
			Expect(sess.Pools).To(HaveLen(1))
			Expect(sess.Pools[0].Buffers).To(HaveLen(1))
			Expect(sess.Commits).To(Equal(3))
		})

		It("invalidates the drawable on reconfigure", func() {
			_, err := surf.AcquireDrawable()
			Expect(err).NotTo(HaveOccurred())
			_, _, err = surf.Configure(64, 48)
			Expect(err).NotTo(HaveOccurred())
			Expect(surf.Submit()).To(MatchError(surface.ErrNoDrawable))
		})

		It("grows the pool and recreates the buffer when dimensions grow", func() {
			_, err := surf.AcquireDrawable()
			Expect(err).NotTo(HaveOccurred())
			Expect(surf.Submit()).To(Succeed())

			_, _, err = surf.Configure(128, 64)
			Expect(err).NotTo(HaveOccurred())
			_, err = surf.AcquireDrawable()
			Expect(err).NotTo(HaveOccurred())
			Expect(surf.Submit()).To(Succeed())

			Expect(sess.Pools).To(HaveLen(1))
			Expect(sess.Pools[0].Resizes).To(Equal([]int32{128 * 4 * 64}))
			Expect(sess.Pools[0].Buffers).To(HaveLen(2))
			Expect(sess.Pools[0].Buffers[0].Destroyed).To(BeTrue())
			Expect(sess.Pools[0].Buffers[1].Width).To(Equal(int32(128)))
		})

		It("keeps the pool size when dimensions shrink", func() {
			_, err := surf.AcquireDrawable()
			Expect(err).NotTo(HaveOccurred())
			Expect(surf.Submit()).To(Succeed())

			_, _, err = surf.Configure(32, 24)
			Expect(err).NotTo(HaveOccurred())
			_, err = surf.AcquireDrawable()
			Expect(err).NotTo(HaveOccurred())
			Expect(surf.Submit()).To(Succeed())

			Expect(sess.Pools[0].Resizes).To(BeEmpty())
			Expect(sess.Pools[0].Buffers).To(HaveLen(2))
			Expect(sess.Pools[0].Buffers[1].Width).To(Equal(int32(32)))
		})

		It("propagates commit failures", func() {
			_, err := surf.AcquireDrawable()
			Expect(err).NotTo(HaveOccurred())
			Expect(surf.Submit()).To(Succeed())

			boom := errors.New("connection lost")
			sess.NextErr = boom
			_, err = surf.AcquireDrawable()
			Expect(err).NotTo(HaveOccurred())
			Expect(surf.Submit()).To(MatchError(boom))
		})

		It("propagates pool creation failures", func() {
			boom := errors.New("connection lost")
			sess.NextErr = boom
			_, err := surf.AcquireDrawable()
			Expect(err).NotTo(HaveOccurred())
			Expect(surf.Submit()).To(MatchError(boom))
			Expect(surf.State()).To(Equal(surface.StateConfigured))
		})
	})

	Describe("Close", func() {
		It("destroys the protocol objects", func() {
			_, _, err := surf.Configure(64, 48)
			Expect(err).NotTo(HaveOccurred())
			_, err = surf.AcquireDrawable()
			Expect(err).NotTo(HaveOccurred())
			Expect(surf.Submit()).To(Succeed())

			Expect(surf.Close()).To(Succeed())
			Expect(sess.Pools[0].Destroyed).To(BeTrue())
			Expect(sess.Pools[0].Buffers[0].Destroyed).To(BeTrue())

			_, err = surf.AcquireDrawable()
			Expect(err).To(MatchError(surface.ErrStoreClosed))
		})
	})
})
