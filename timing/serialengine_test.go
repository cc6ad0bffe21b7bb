package timing

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/lifeboard/hooking"
)

type testEvent struct {
	label   string
	at      VTimeInSec
	handler Handler
}

func (e testEvent) Time() VTimeInSec { return e.at }

func (e testEvent) Handler() Handler { return e.handler }

var _ = Describe("SerialEngine", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *SerialEngine
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewSerialEngine()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should run events in time order", func() {
		handler1 := NewMockHandler(mockCtrl)
		handler2 := NewMockHandler(mockCtrl)

		evt1 := testEvent{"1", 4, handler1}
		evt2 := testEvent{"2", 2, handler2}
		evt3 := testEvent{"3", 3, handler1}
		evt4 := testEvent{"4", 5, handler1}

		handleEvt2 := handler2.EXPECT().Handle(evt2).DoAndReturn(func(Event) error {
			engine.Schedule(evt3)
			engine.Schedule(evt4)
			return nil
		})
		handleEvt3 := handler1.EXPECT().Handle(evt3).Return(nil).After(handleEvt2)
		handleEvt1 := handler1.EXPECT().Handle(evt1).Return(nil).After(handleEvt3)
		handler1.EXPECT().Handle(evt4).Return(nil).After(handleEvt1)

		engine.Schedule(evt1)
		engine.Schedule(evt2)

		Expect(engine.Run()).To(Succeed())
		Expect(engine.CurrentTime()).To(Equal(VTimeInSec(5)))
	})

	It("should run same-time events in scheduling order", func() {
		handler := NewMockHandler(mockCtrl)

		var order []string
		handler.EXPECT().Handle(gomock.Any()).DoAndReturn(func(e Event) error {
			order = append(order, e.(testEvent).label)
			return nil
		}).Times(5)

		for _, label := range []string{"a", "b", "c", "d"} {
			engine.Schedule(testEvent{label, 1, handler})
		}
		engine.Schedule(testEvent{"early", 0.5, handler})

		Expect(engine.Run()).To(Succeed())
		Expect(order).To(Equal([]string{"early", "a", "b", "c", "d"}))
	})

	It("should stop on handler errors", func() {
		handler := NewMockHandler(mockCtrl)
		failure := errors.New("broken")

		evt1 := testEvent{"1", 1, handler}
		evt2 := testEvent{"2", 2, handler}

		handler.EXPECT().Handle(evt1).Return(failure)

		engine.Schedule(evt1)
		engine.Schedule(evt2)

		Expect(engine.Run()).To(MatchError(failure))
		Expect(engine.CurrentTime()).To(Equal(VTimeInSec(1)))
	})

	It("should panic when scheduling in the past", func() {
		handler := NewMockHandler(mockCtrl)
		evt := testEvent{"1", 2, handler}
		handler.EXPECT().Handle(evt).DoAndReturn(func(Event) error {
			engine.Schedule(testEvent{"past", 1, handler})
			return nil
		})

		engine.Schedule(evt)

		Expect(func() { _ = engine.Run() }).To(Panic())
	})

	It("should invoke hooks after every event", func() {
		handler := NewMockHandler(mockCtrl)
		evt1 := testEvent{"1", 1, handler}
		evt2 := testEvent{"2", 2.5, handler}
		handler.EXPECT().Handle(gomock.Any()).Return(nil).Times(2)

		var seen []VTimeInSec
		engine.AcceptHook(hooking.HookFunc(func(ctx hooking.HookCtx) {
			Expect(ctx.Pos).To(Equal(HookPosAfterEvent))
			Expect(ctx.Domain).To(BeIdenticalTo(engine))
			seen = append(seen, ctx.Item.(Event).Time())
		}))

		engine.Schedule(evt1)
		engine.Schedule(evt2)
		Expect(engine.Run()).To(Succeed())

		Expect(seen).To(Equal([]VTimeInSec{1, 2.5}))
	})

	It("should hold events while paused", func() {
		handler := NewMockHandler(mockCtrl)
		handled := make(chan struct{}, 1)
		handler.EXPECT().Handle(gomock.Any()).DoAndReturn(func(Event) error {
			handled <- struct{}{}
			return nil
		})

		engine.Schedule(testEvent{"1", 1, handler})
		engine.Pause()

		done := make(chan error, 1)
		go func() { done <- engine.Run() }()

		Consistently(handled, 50*time.Millisecond).ShouldNot(Receive())

		engine.Continue()

		Eventually(handled).Should(Receive())
		Eventually(done).Should(Receive(BeNil()))
	})

	It("should be a no-op to pause twice or continue without pause", func() {
		engine.Continue()
		engine.Pause()
		engine.Pause()
		engine.Continue()

		Expect(engine.Run()).To(Succeed())
	})
})
