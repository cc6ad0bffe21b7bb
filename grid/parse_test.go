package grid

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseBoard", func() {
	It("should read what String writes", func() {
		b := NewRandom(0x01ABCDEF)

		parsed, err := ParseBoard(b.String())

		Expect(err).NotTo(HaveOccurred())
		Expect(parsed).To(Equal(b))
	})

	It("should accept alternative live glyphs", func() {
		b, err := ParseBoard("O....\n.*...\n..#..\n.....\n.....")

		Expect(err).NotTo(HaveOccurred())
		Expect(b).To(Equal(FromCells(Cell{0, 0}, Cell{1, 1}, Cell{2, 2})))
	})

	DescribeTable("should reject malformed boards",
		func(s string) {
			_, err := ParseBoard(s)
			Expect(err).To(MatchError(ErrMalformedBoard))
		},
		Entry("too few rows", ".....\n....."),
		Entry("too many rows", ".....\n.....\n.....\n.....\n.....\n....."),
		Entry("short row", "....\n.....\n.....\n.....\n....."),
		Entry("bad glyph", "..x..\n.....\n.....\n.....\n....."),
	)

	It("should panic in MustParseBoard on bad input", func() {
		Expect(func() { MustParseBoard("nope") }).To(Panic())
	})
})
