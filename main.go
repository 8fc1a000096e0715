package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mozvip/gopho/config"
	"github.com/mozvip/gopho/files"
	"github.com/mozvip/gopho/viewer"
)

var configFolder string

var rootCmd = &cobra.Command{
	Use:   "gopho [flags] image|directory|archive ...",
	Short: "gopho is a lightweight image viewer",
	Long: `gopho shows images one at a time, as fast as possible.

<space> next image, <backspace> or - previous, <home> first
f fullscreen, F full size, p presentation, + or = double, / half
t r <right> rotate right, T R l <left> rotate left, <up> rotate 180
d delete, 0-9 note lists, a comment, i info, s slideshow, b borders
q or <esc> quit`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	bindFlags(rootCmd.Flags())
}

func bindFlags(flags *pflag.FlagSet) {
	defaults := config.NewPreferences()
	mode := defaults.ScaleMode
	flags.BoolP("presentation", "p", false, "presentation mode (full screen, centered)")
	flags.IntP("slideshow", "s", 0, "slideshow mode, advancing every N seconds")
	flags.BoolP("debug", "d", false, "print debug messages")
	flags.VarP(&mode, "mode", "m", "scale mode: normal, fullsize, fullscreen, screenratio or imageratio")
	flags.Float64P("ratio", "r", defaults.ScaleRatio, "scale ratio used by the ratio modes")
	flags.BoolP("remove-borders", "b", false, "trim white borders")
	flags.StringVar(&configFolder, "config", "", "configuration folder (default <user config dir>/gopho)")
}

// applyFlags overrides the preferences with the flags given on the command
// line.
func applyFlags(prefs config.Preferences, flags *pflag.FlagSet) (config.Preferences, error) {
	var err error
	if flags.Changed("presentation") {
		prefs.Presentation, err = flags.GetBool("presentation")
	}
	if err == nil && flags.Changed("slideshow") {
		prefs.DelaySeconds, err = flags.GetInt("slideshow")
	}
	if err == nil && flags.Changed("debug") {
		prefs.Debug, err = flags.GetBool("debug")
	}
	if err == nil && flags.Changed("mode") {
		err = prefs.ScaleMode.Set(flags.Lookup("mode").Value.String())
	}
	if err == nil && flags.Changed("ratio") {
		prefs.ScaleRatio, err = flags.GetFloat64("ratio")
	}
	if err == nil && flags.Changed("remove-borders") {
		prefs.RemoveBorders, err = flags.GetBool("remove-borders")
	}
	if err != nil {
		return prefs, err
	}
	return prefs, prefs.Validate()
}

// printNotes writes every non-empty note list, one per line.
func printNotes(w io.Writer, lists map[int][]string) {
	notes := make([]int, 0, len(lists))
	for n := range lists {
		notes = append(notes, n)
	}
	sort.Ints(notes)
	for _, n := range notes {
		fmt.Fprintf(w, "Note %d: %s\n", n, strings.Join(lists[n], " "))
	}
}

func run(cmd *cobra.Command, args []string) error {
	if configFolder == "" {
		var err error
		if configFolder, err = config.Folder(); err != nil {
			return err
		}
	}
	prefs, err := config.Load(configFolder)
	if err != nil {
		return err
	}
	if prefs, err = applyFlags(prefs, cmd.Flags()); err != nil {
		return err
	}
	viewer.Debug = prefs.Debug

	library := files.NewLibrary()
	library.RemoveBorders = prefs.RemoveBorders
	defer library.Close()

	paths := library.Expand(args)
	log.Printf("%d images to show", len(paths))

	sched := viewer.NewTickScheduler(nil)
	pho := NewPho(library, sched, prefs.WindowedSize.W, prefs.WindowedSize.H)

	opts := []viewer.Option{
		viewer.WithDecoder(library),
		viewer.WithMetadata(library),
		viewer.WithRemover(library),
		viewer.WithPrompter(pho),
		viewer.WithDisplay(pho),
		viewer.WithScale(prefs.ScaleMode, prefs.ScaleRatio),
		viewer.WithPresentation(prefs.Presentation),
		viewer.WithSlideshow(prefs.DelaySeconds, sched),
		viewer.OnEnd(func() { pho.quit = true }),
	}
	if w, h := ebiten.ScreenSizeInFullscreen(); w > 0 && h > 0 {
		opts = append(opts, viewer.WithMonitor(w, h))
	}
	session, err := viewer.New(paths, opts...)
	if err != nil {
		return err
	}
	pho.session = session

	ebiten.SetWindowTitle("gopho")
	setWindowIcon()
	ebiten.SetWindowSize(prefs.WindowedSize.W, prefs.WindowedSize.H)
	if rec, err := session.Next(); rec == nil {
		return fmt.Errorf("nothing to show: %w", err)
	} else if err != nil {
		log.Println(err)
	}

	err = ebiten.RunGame(pho)
	printNotes(os.Stdout, session.NoteLists())
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
