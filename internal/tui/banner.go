package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner with the running version.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	s1 := termenv.String("       _            _ _        ").Foreground(p.Color("#818cf8"))
	s2 := termenv.String("   ___| | __ _ _ __(_) |_ __ _ ").Foreground(p.Color("#a78bfa"))
	s3 := termenv.String("  / __| |/ _` | '__| | __/ _` |").Foreground(p.Color("#c084fc"))
	s4 := termenv.String(" | (__| | (_| | |  | | || (_| |").Foreground(p.Color("#e879f9"))
	s5 := termenv.String("  \\___|_|\\__,_|_|  |_|\\__\\__,_|").Foreground(p.Color("#f472b6"))
	v := termenv.String("  v" + version).Foreground(p.Color("#fb7185"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(v)
	fmt.Println()
}
