package main

import (
	"fmt"
	"log"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/stripe-glitch/internal/config"
	"github.com/iburimskiy/stripe-glitch/internal/export"
	"github.com/iburimskiy/stripe-glitch/internal/game"
)

var (
	configFile string
	seed       uint64
	sound      bool
	stripes    int

	outFile  string
	apngFile string
	width    int
	height   int
)

// loadConfig layers defaults, the yaml file, STRIPEGLITCH_* variables and
// finally the flags that were set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.ParseEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("sound") {
		cfg.Sound.Enabled = sound
	}
	if flags.Changed("stripes") {
		cfg.Stripes.Count = stripes
	}
	if flags.Changed("width") {
		cfg.Window.Width = width
	}
	if flags.Changed("height") {
		cfg.Window.Height = height
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return game.Run(cfg)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s := cfg.Seed
	if s == 0 {
		s = rand.Uint64()
	}
	w, h := cfg.Window.Width, cfg.Window.Height

	if outFile != "" {
		if err := export.RenderPNG(cfg, s, w, h, outFile); err != nil {
			return err
		}
		log.Printf("wrote %s (%dx%d, seed %d)", outFile, w, h, s)
	}
	if apngFile != "" {
		if err := export.RenderAPNG(cfg, s, w, h, apngFile); err != nil {
			return err
		}
		log.Printf("wrote %s (%d frames, seed %d)", apngFile, cfg.Glitch.Interval+1, s)
	}
	return nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("stripe-glitch: ")

	rootCmd := &cobra.Command{
		Use:          "stripe-glitch",
		Short:        "generative line stripes with a glitch loop",
		RunE:         runWindow,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "random seed (0 picks one)")
	rootCmd.PersistentFlags().IntVar(&stripes, "stripes", config.StripeCount, "number of stripes")
	rootCmd.PersistentFlags().IntVar(&width, "width", config.WindowWidth, "canvas width")
	rootCmd.PersistentFlags().IntVar(&height, "height", config.WindowHeight, "canvas height")
	rootCmd.Flags().BoolVar(&sound, "sound", false, "play a crackle on every glitch")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render a composition to image files without a window",
		RunE:  runRender,
	}
	renderCmd.Flags().StringVar(&outFile, "out", "stripes.png", "png output path (empty to skip)")
	renderCmd.Flags().StringVar(&apngFile, "apng", "", "animated png of one glitch cycle")

	rootCmd.AddCommand(renderCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
