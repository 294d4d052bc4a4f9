package askcii_test

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/kevin-cantwell/askcii"
	"github.com/nfnt/resize"
	. "github.com/onsi/ginkgo"
	"github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("Rasterizer", func() {
	var r *askcii.Rasterizer

	BeforeEach(func() {
		r = askcii.NewRasterizer()
	})

	Describe("Render", func() {
		It("renders a white 2x2 image as the brightest glyph", func() {
			art, err := r.Render(uniform(2, 2, color.White), 2, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(art).To(Equal(askcii.Art{"..", ".."}))
		})

		It("renders a black 4x1 image as the darkest glyph", func() {
			art, err := r.Render(uniform(4, 1, color.Black), 4, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(art).To(Equal(askcii.Art{"@@@@"}))
		})

		table.DescribeTable("yields height lines of width glyphs",
			func(width, height int) {
				art, err := r.Render(gradient(37, 23), width, height)
				Expect(err).NotTo(HaveOccurred())
				Expect(art).To(HaveLen(height))
				for _, line := range art {
					Expect(utf8.RuneCountInString(line)).To(Equal(width))
				}
			},
			table.Entry("same size", 37, 23),
			table.Entry("downscaled", 10, 5),
			table.Entry("upscaled", 80, 40),
			table.Entry("single pixel", 1, 1),
			table.Entry("single row", 12, 1),
		)

		It("is deterministic", func() {
			img := gradient(64, 48)
			first, err := r.Render(img, 30, 12)
			Expect(err).NotTo(HaveOccurred())
			second, err := r.Render(img, 30, 12)
			Expect(err).NotTo(HaveOccurred())
			Expect(second.String()).To(Equal(first.String()))
		})

		It("only emits ramp glyphs", func() {
			art, err := r.Render(gradient(50, 3), 50, 3)
			Expect(err).NotTo(HaveOccurred())
			for _, line := range art {
				for _, g := range line {
					Expect(askcii.DefaultRamp.String()).To(ContainSubstring(string(g)))
				}
			}
		})

		It("rejects non-positive dimensions", func() {
			_, err := r.Render(uniform(2, 2, color.White), 0, 2)
			Expect(err).To(MatchError(askcii.ErrInvalidDimension))
			_, err = r.Render(uniform(2, 2, color.White), 2, -1)
			Expect(err).To(MatchError(askcii.ErrInvalidDimension))
		})

		It("keeps the default ramp when given an empty one", func() {
			empty := askcii.NewRasterizer(askcii.WithRamp(askcii.Ramp{}))
			Expect(empty.Ramp().String()).To(Equal(askcii.DefaultRamp.String()))
			art, err := empty.Render(uniform(2, 1, color.White), 2, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(art).To(Equal(askcii.Art{".."}))
		})

		It("uses an injected ramp", func() {
			ramp, err := askcii.NewRamp("xo")
			Expect(err).NotTo(HaveOccurred())
			art, err := askcii.NewRasterizer(askcii.WithRamp(ramp)).Render(uniform(3, 1, color.White), 3, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(art).To(Equal(askcii.Art{"ooo"}))
		})

		It("applies the filter before grayscale conversion", func() {
			inverted := askcii.NewRasterizer(askcii.WithFilter(askcii.Adjustments{Invert: true}))
			art, err := inverted.Render(uniform(4, 1, color.Black), 4, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(art).To(Equal(askcii.Art{"...."}))
		})

		It("accepts other resampling kernels", func() {
			bilinear := askcii.NewRasterizer(askcii.WithInterpolation(resize.Bilinear))
			art, err := bilinear.Render(uniform(8, 8, color.White), 4, 4)
			Expect(err).NotTo(HaveOccurred())
			Expect(art).To(Equal(askcii.Art{"....", "....", "....", "...."}))
		})
	})

	Describe("Resize", func() {
		It("produces exactly the target size", func() {
			img, err := r.Resize(gradient(10, 10), 7, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(img.Bounds().Dx()).To(Equal(7))
			Expect(img.Bounds().Dy()).To(Equal(3))
		})

		It("rejects an empty source", func() {
			_, err := r.Resize(image.NewRGBA(image.Rect(0, 0, 0, 0)), 2, 2)
			Expect(err).To(MatchError(askcii.ErrInvalidDimension))
		})
	})

	Describe("Encode", func() {
		It("writes the rendered text", func() {
			var buf bytes.Buffer
			Expect(r.Encode(&buf, uniform(3, 2, color.Black), 3, 2)).To(Succeed())
			Expect(buf.String()).To(Equal("@@@\n@@@\n"))
		})
	})
})

var _ = Describe("Grayscale", func() {
	table.DescribeTable("uses 0.299R + 0.587G + 0.114B rounded",
		func(c color.Color, want uint8) {
			gray := askcii.Grayscale(uniform(1, 1, c))
			Expect(gray.GrayAt(0, 0).Y).To(Equal(want))
		},
		table.Entry("black", color.Black, uint8(0)),
		table.Entry("white", color.White, uint8(255)),
		table.Entry("red", color.RGBA{R: 255, A: 255}, uint8(76)),
		table.Entry("green", color.RGBA{G: 255, A: 255}, uint8(150)),
		table.Entry("blue", color.RGBA{B: 255, A: 255}, uint8(29)),
		table.Entry("mid grey", color.RGBA{R: 128, G: 128, B: 128, A: 255}, uint8(128)),
	)

	It("rebases sub-images to the origin", func() {
		img := gradient(10, 10).SubImage(image.Rect(2, 3, 6, 5))
		gray := askcii.Grayscale(img)
		Expect(gray.Bounds()).To(Equal(image.Rect(0, 0, 4, 2)))
		Expect(gray.GrayAt(0, 0).Y).To(Equal(uint8(2 * 255 / 9)))
	})
})

var _ = Describe("MapToCharacters", func() {
	It("maps one glyph per pixel in row-major order", func() {
		gray := image.NewGray(image.Rect(0, 0, 2, 2))
		gray.Pix = []uint8{0, 255, 25, 250}
		Expect(string(askcii.MapToCharacters(gray, askcii.DefaultRamp))).To(Equal("@.#."))
	})

	It("maps with the default ramp when the ramp is empty", func() {
		gray := image.NewGray(image.Rect(0, 0, 2, 1))
		gray.Pix = []uint8{0, 255}
		Expect(string(askcii.MapToCharacters(gray, askcii.Ramp{}))).To(Equal("@."))
	})

	It("is monotonic over the whole luminance range", func() {
		gray := image.NewGray(image.Rect(0, 0, 256, 1))
		for v := 0; v < 256; v++ {
			gray.Pix[v] = uint8(v)
		}
		glyphs := askcii.MapToCharacters(gray, askcii.DefaultRamp)
		ramp := askcii.DefaultRamp.String()
		last := 0
		for _, g := range glyphs {
			idx := strings.IndexRune(ramp, g)
			Expect(idx).To(BeNumerically(">=", last))
			last = idx
		}
		Expect(glyphs[0]).To(Equal('@'))
		Expect(glyphs[255]).To(Equal('.'))
	})
})

var _ = Describe("WrapIntoLines", func() {
	It("splits glyphs into lines of width", func() {
		art, err := askcii.WrapIntoLines([]rune("abcdef"), 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(art).To(Equal(askcii.Art{"abc", "def"}))
		Expect(art.String()).To(Equal("abc\ndef\n"))
	})

	It("fails when the glyphs do not divide evenly", func() {
		_, err := askcii.WrapIntoLines([]rune("abcdefghij"), 3)
		Expect(err).To(MatchError(askcii.ErrMalformedInput))
	})

	It("fails on a non-positive width", func() {
		_, err := askcii.WrapIntoLines([]rune("ab"), 0)
		Expect(err).To(MatchError(askcii.ErrMalformedInput))
	})
})
