package peripheral

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/lifeboard/grid"
)

var _ = Describe("Render", func() {
	It("should draw the pattern row by row", func() {
		p := grid.FromCells(grid.Cell{Row: 0, Col: 0}, grid.Cell{Row: 4, Col: 4}).Snapshot()

		Expect(Render(p)).To(Equal(
			"■ · · · · \n" +
				"· · · · · \n" +
				"· · · · · \n" +
				"· · · · · \n" +
				"· · · · ■ \n"))
	})
})

var _ = Describe("FrameRecorder", func() {
	It("should keep frames in order", func() {
		r := NewFrameRecorder(0)
		_, ok := r.Last()
		Expect(ok).To(BeFalse())

		a := grid.NewRandom(1).Snapshot()
		b := grid.NewRandom(2).Snapshot()
		r.Show(a, time.Second)
		r.Show(b, time.Second)

		Expect(r.Frames()).To(Equal([]grid.Pattern{a, b}))
		last, ok := r.Last()
		Expect(ok).To(BeTrue())
		Expect(last).To(Equal(b))
	})

	It("should drop the oldest frames over the limit", func() {
		r := NewFrameRecorder(2)

		for i := uint32(1); i <= 3; i++ {
			r.Show(grid.NewRandom(i).Snapshot(), 0)
		}

		Expect(r.Frames()).To(Equal([]grid.Pattern{
			grid.NewRandom(2).Snapshot(),
			grid.NewRandom(3).Snapshot(),
		}))
	})
})
