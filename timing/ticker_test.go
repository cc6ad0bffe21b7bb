package timing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("TickingComponent", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *SerialEngine
		ticker   *MockTicker
		tc       *TickingComponent
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewSerialEngine()
		ticker = NewMockTicker(mockCtrl)
		tc = NewTickingComponent("TC", engine, 10*Hz, ticker)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should keep ticking while the ticker makes progress", func() {
		var times []VTimeInSec
		ticker.EXPECT().Tick().DoAndReturn(func() bool {
			times = append(times, engine.CurrentTime())
			return len(times) < 3
		}).Times(3)

		tc.TickLater()
		Expect(engine.Run()).To(Succeed())

		Expect(times).To(HaveLen(3))
		Expect(float64(times[0])).To(BeNumerically("~", 0.1, 1e-9))
		Expect(float64(times[1])).To(BeNumerically("~", 0.2, 1e-9))
		Expect(float64(times[2])).To(BeNumerically("~", 0.3, 1e-9))
	})

	It("should not double-schedule the same tick", func() {
		ticker.EXPECT().Tick().Return(false).Times(1)

		tc.TickLater()
		tc.TickLater()
		Expect(engine.Run()).To(Succeed())
	})

	It("should schedule tick events addressed to itself", func() {
		evt := NewTickEvent(0.3, tc)

		Expect(evt.ID).NotTo(BeEmpty())
		Expect(evt.Time()).To(Equal(VTimeInSec(0.3)))
		Expect(evt.Handler()).To(BeIdenticalTo(tc))
		Expect(NewTickEvent(0.3, tc).ID).NotTo(Equal(evt.ID))
	})

	It("should report its name", func() {
		Expect(tc.Name()).To(Equal("TC"))
	})
})
