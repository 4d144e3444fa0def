package webp_test

import (
	"errors"
	"fmt"
	"os"

	"github.com/deepteams/webp"
)

func ExampleDecode() {
	f, err := os.Open("testdata/red_4x4_lossy.webp")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()

	img, err := webp.Decode(f)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("bounds: %v\n", img.Bounds())
	// would print: bounds: (0,0)-(4,4)
	//
	// No "Output:" comment: this package ships no testdata/ fixtures, so
	// these examples are compiled but not run as verified tests.
}

func ExampleDecodeConfig() {
	f, err := os.Open("testdata/blue_16x16_lossy.webp")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()

	cfg, err := webp.DecodeConfig(f)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%dx%d\n", cfg.Width, cfg.Height)
	// would print: 16x16
}

func ExampleGetFeatures() {
	f, err := os.Open("testdata/red_4x4_lossless.webp")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()

	feat, err := webp.GetFeatures(f)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("size: %dx%d\n", feat.Width, feat.Height)
	fmt.Printf("format: %s\n", feat.Format)
	fmt.Printf("alpha: %v\n", feat.HasAlpha)
	// would print:
	// size: 4x4
	// format: lossless
	// alpha: false
}

func ExampleDecode_unsupportedFeature() {
	f, err := os.Open("testdata/anim_4x4.webp")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()

	_, err = webp.Decode(f)
	var decErr *webp.DecodeError
	if errors.As(err, &decErr) {
		fmt.Println(decErr.Status)
	}
	// would print: UNSUPPORTED_FEATURE
}
