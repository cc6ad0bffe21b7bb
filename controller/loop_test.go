package controller

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/lifeboard/grid"
	"github.com/sarchlab/lifeboard/timing"
)

var _ = Describe("Loop", func() {
	var (
		mockCtrl *gomock.Controller
		random   *MockRandomSource
		buttons  *MockButtonSource
		display  *MockDisplay
		ctrl     *Controller
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		random = NewMockRandomSource(mockCtrl)
		buttons = NewMockButtonSource(mockCtrl)
		display = NewMockDisplay(mockCtrl)

		random.EXPECT().NextU32().Return(blinker.Bits()).AnyTimes()
		buttons.EXPECT().Sample().Return(noPress).AnyTimes()

		ctrl = MakeBuilder().
			WithRandomSource(random).
			WithButtons(buttons).
			WithDisplay(display).
			Build("Board")
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should stop after the tick limit", func() {
		display.EXPECT().Show(gomock.Any(), TickPeriod).Times(12)

		err := NewLoop(ctrl.Limit(12)).Run(context.Background())

		Expect(err).NotTo(HaveOccurred())
		Expect(ctrl.TickCount()).To(Equal(uint64(12)))
	})

	It("should stop when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		display.EXPECT().Show(gomock.Any(), TickPeriod).
			Do(func(grid.Pattern, time.Duration) {
				if ctrl.TickCount() == 3 {
					cancel()
				}
			}).
			Times(3)

		err := NewLoop(ctrl).Run(ctx)

		Expect(err).To(MatchError(context.Canceled))
		Expect(ctrl.TickCount()).To(Equal(uint64(3)))
	})

	It("should hold while paused", func() {
		display.EXPECT().Show(gomock.Any(), TickPeriod).AnyTimes()
		loop := NewLoop(ctrl.Limit(5))
		loop.Pause()
		Expect(loop.IsPaused()).To(BeTrue())

		done := make(chan error)
		go func() { done <- loop.Run(context.Background()) }()

		Consistently(done, 50*time.Millisecond).ShouldNot(Receive())

		loop.Continue()
		Eventually(done).Should(Receive(BeNil()))
		Expect(loop.IsPaused()).To(BeFalse())
	})

	It("should return when cancelled while paused", func() {
		loop := NewLoop(ctrl)
		loop.Pause()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Expect(loop.Run(ctx)).To(MatchError(context.Canceled))
		Expect(ctrl.TickCount()).To(Equal(uint64(0)))
	})
})

var _ = Describe("Component", func() {
	var (
		mockCtrl *gomock.Controller
		random   *MockRandomSource
		buttons  *MockButtonSource
		display  *MockDisplay
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		random = NewMockRandomSource(mockCtrl)
		buttons = NewMockButtonSource(mockCtrl)
		display = NewMockDisplay(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should tick once per 100ms of virtual time", func() {
		buttons.EXPECT().Sample().Return(noPress).AnyTimes()
		display.EXPECT().Show(gomock.Any(), TickPeriod).Times(20)

		ctrl := MakeBuilder().
			WithRandomSource(random).
			WithButtons(buttons).
			WithDisplay(display).
			WithInitialBoard(blinker).
			Build("Board")

		engine := timing.NewSerialEngine()
		comp := NewComponent(ctrl, engine, 20)
		comp.TickLater()

		Expect(engine.Run()).To(Succeed())

		Expect(comp.Controller().TickCount()).To(Equal(uint64(20)))
		Expect(float64(engine.CurrentTime())).To(BeNumerically("~", 2.0, 1e-9))
		Expect(comp.Name()).To(Equal("Board"))
		Expect(ctrl.Board()).To(Equal(blinker))
	})
})
