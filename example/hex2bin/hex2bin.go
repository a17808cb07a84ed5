package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	ihex "github.com/lnming/libcintelhex"
)

func main() {
	base := flag.Uint64("base", 0, "first address of the output window")
	size := flag.Uint64("size", 0, "window size in bytes, 0 means through the last data byte")
	fill := flag.Uint("fill", 0xFF, "padding byte for unprogrammed locations")
	out := flag.String("o", "out.bin", "output file")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: hex2bin [flags] input.hex")
		flag.PrintDefaults()
		os.Exit(2)
	}

	rs, err := ihex.FromFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	window := *size
	if window == 0 {
		_, hi, err := rs.AddressRange()
		if err != nil {
			log.Fatal(err)
		}
		if hi > *base {
			window = hi - *base
		}
	}
	if *base > math.MaxUint32 || window > math.MaxUint32 {
		log.Fatalf("window [0x%X, +0x%X) exceeds the 32 bit address space", *base, window)
	}

	image, err := rs.ToBinary(uint32(*base), uint32(window), byte(*fill))
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*out, image, 0644); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %d bytes to %s\n", len(image), *out)
}
