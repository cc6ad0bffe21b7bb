package peripheral

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/lifeboard/controller"
	"github.com/sarchlab/lifeboard/grid"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var _ = Describe("Terminal", func() {
	var (
		keys  *keyLatch
		quits int
		model tea.Model
		term  *Terminal
		sent  []tea.Msg
		holds []time.Duration
	)

	BeforeEach(func() {
		keys = &keyLatch{}
		quits = 0
		model = terminalModel{keys: keys, quit: func() { quits++ }}

		sent = nil
		holds = nil
		term = &Terminal{
			keys:  keys,
			send:  func(m tea.Msg) { sent = append(sent, m) },
			sleep: func(d time.Duration) { holds = append(holds, d) },
		}
	})

	It("should send the frame and then hold it", func() {
		p := grid.NewRandom(0x1F).Snapshot()

		term.Show(p, 100*time.Millisecond)

		Expect(sent).To(Equal([]tea.Msg{frameMsg(p)}))
		Expect(holds).To(Equal([]time.Duration{100 * time.Millisecond}))
	})

	It("should draw the latest frame row by row", func() {
		Expect(model.View()).NotTo(ContainSubstring("■"))

		p := grid.FromCells(grid.Cell{Row: 0, Col: 0}, grid.Cell{Row: 4, Col: 4}).Snapshot()
		model, _ = model.Update(frameMsg(p))

		Expect(model.View()).To(Equal(
			"■ · · · · \n" +
				"· · · · · \n" +
				"· · · · · \n" +
				"· · · · · \n" +
				"· · · · ■ \n" +
				"\n" + terminalHelp + "\n"))
	})

	It("should latch key presses until sampled", func() {
		model, _ = model.Update(runeKey('a'))
		model, _ = model.Update(runeKey('B'))
		model, _ = model.Update(runeKey('x'))

		Expect(term.Sample()).To(Equal(controller.Buttons{A: true, B: true}))
		Expect(term.Sample()).To(Equal(controller.Buttons{}))
	})

	It("should keep A held while the key repeats", func() {
		for i := 0; i < 3; i++ {
			model, _ = model.Update(runeKey('a'))
			Expect(term.Sample()).To(Equal(controller.Buttons{A: true}))
		}
	})

	DescribeTable("should quit",
		func(key tea.KeyMsg) {
			var cmd tea.Cmd
			model, cmd = model.Update(key)

			Expect(cmd).NotTo(BeNil())
			Expect(cmd()).To(Equal(tea.QuitMsg{}))
			Expect(quits).To(Equal(1))
		},
		Entry("on q", runeKey('q')),
		Entry("on escape", tea.KeyMsg{Type: tea.KeyEsc}),
		Entry("on ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}),
	)
})
