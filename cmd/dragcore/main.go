package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yourusername/dragcore/internal/config"
	"github.com/yourusername/dragcore/internal/drag"
	"github.com/yourusername/dragcore/internal/logging"
	"github.com/yourusername/dragcore/internal/output"
	"github.com/yourusername/dragcore/internal/session"
	"github.com/yourusername/dragcore/internal/tui"
)

var (
	configPath string
	jsonOutput bool
	noColor    bool
	debugMode  bool

	// Color functions
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	keyColor     = color.New(color.FgYellow)
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "dragcore",
	Short: "Drag-and-drop core for diagram scenes",
	Long: `Dragcore loads a scene of elements and nested groups and runs drag
gestures against it: hit-testing drop targets, moving drag selections and
drag groups, and reparenting elements on drop.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// validateCmd checks a scene file
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a scene file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) > 0 {
			path = args[0]
		}

		cfg, err := config.LoadConfig(path)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		if jsonOutput {
			return printJSON(map[string]interface{}{
				"valid":       true,
				"groups":      len(cfg.Groups),
				"elements":    len(cfg.Elements),
				"connections": len(cfg.Connections),
				"dragGroups":  len(cfg.DragGroups),
			})
		}

		successColor.Println("✓ Scene is valid")
		fmt.Printf("  Groups: %d\n", len(cfg.Groups))
		fmt.Printf("  Elements: %d\n", len(cfg.Elements))
		fmt.Printf("  Connections: %d\n", len(cfg.Connections))
		fmt.Printf("  Drag Groups: %d\n", len(cfg.DragGroups))
		if cfg.Settings.Script != "" {
			fmt.Printf("  Script: %s\n", cfg.Settings.Script)
		}
		return nil
	},
}

// initCmd writes an example scene
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example scene file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.GetConfigPath()
		}

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("scene file already exists at %s", path)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create scene directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultScene), 0644); err != nil {
			return fmt.Errorf("failed to write scene file: %w", err)
		}

		successColor.Printf("✓ Created example scene at: %s\n", path)
		return nil
	},
}

const defaultScene = `# Dragcore scene
settings:
  canvas: 800x600
  elementsDraggable: true
  allowNestedGroups: true

groups:
  - id: board
    bounds: 40,40,460,420
  - id: lane
    bounds: 80,120,200,300
    parent: board
  - id: locked
    bounds: 560,40,200,200
    dropOverride: true

elements:
  - id: card
    bounds: 540,400,80,50
  - id: note
    bounds: 660,400,80,50
  - id: pin
    bounds: 600,120,40,40
    group: locked
  - id: fixed
    bounds: 320,520,80,40
    notDraggable: true

connections:
  - source: card
    target: note

dragGroups:
  - name: pair
    members:
      - id: card
      - id: note
`

// Show command flags
var (
	showASCII   bool
	showUnicode bool
	showNoIDs   bool
	showWidth   int
	showHeight  int
)

// showCmd prints the scene
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show elements, groups and a visualization of the scene",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := loadSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		if jsonOutput {
			return printJSON(sess.Config)
		}

		infoColor.Println("Elements")
		output.PrintElementsTable(os.Stdout, sess.Scene)
		fmt.Println()
		infoColor.Println("Groups")
		output.PrintGroupsTable(os.Stdout, sess.Registry)
		fmt.Println()
		infoColor.Println("Drag Groups")
		output.PrintDragGroupsTable(os.Stdout, sess.Handler)
		fmt.Println()

		output.PrintVisualization(os.Stdout, sess.Scene, sess.Config.Settings.CanvasSize(), getVisualizationOptions())
		return nil
	},
}

// Drag command flags
var (
	dragSteps     int
	dragTracePath string
	dragShow      bool
)

// dragCmd runs one gesture
var dragCmd = &cobra.Command{
	Use:   "drag <element> <dx,dy>",
	Short: "Drag an element by an offset",
	Long: `Presses on the element's center, moves the pointer by dx,dy in the
given number of steps and releases. Prints where the element ended up
and which group it belongs to afterwards.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		delta, err := config.ParsePoint(args[1])
		if err != nil {
			return fmt.Errorf("invalid offset: %w", err)
		}

		sess, err := loadSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		res, err := sess.Drag(args[0], delta, dragSteps)
		if err != nil {
			return err
		}

		if dragTracePath != "" {
			if err := writeTrace(sess, dragTracePath); err != nil {
				return err
			}
		}

		if jsonOutput {
			events := make([]json.RawMessage, 0, len(res.Events))
			for _, line := range res.Events {
				events = append(events, json.RawMessage(line))
			}
			return printJSON(map[string]interface{}{
				"element":   res.Element,
				"accepted":  res.Accepted,
				"from":      config.FormatBounds(res.Start),
				"to":        config.FormatBounds(res.Bounds),
				"oldParent": res.OldParent,
				"newParent": res.NewParent,
				"events":    events,
			})
		}

		output.PrintResult(os.Stdout, res)
		if dragShow {
			fmt.Println()
			output.PrintVisualization(os.Stdout, sess.Scene, sess.Config.Settings.CanvasSize(), getVisualizationOptions())
		}
		return nil
	},
}

// interactiveCmd drives the scene with the terminal mouse
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Drag elements with the mouse in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := loadSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		app, err := tui.NewTerminal(sess, getVisualizationOptions().UseUnicode)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := app.Run(ctx); err != nil {
			return err
		}

		fmt.Printf("%s %d gestures recorded\n", keyColor.Sprint("Session:"), sess.Trace.Count(drag.EventDragStop))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Scene file (default ~/.config/dragcore/scene.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(dragCmd)
	rootCmd.AddCommand(interactiveCmd)

	for _, cmd := range []*cobra.Command{showCmd, dragCmd, interactiveCmd} {
		cmd.Flags().BoolVar(&showASCII, "ascii", false, "Use ASCII box characters")
		cmd.Flags().BoolVar(&showUnicode, "unicode", false, "Use Unicode box characters")
	}
	for _, cmd := range []*cobra.Command{showCmd, dragCmd} {
		cmd.Flags().BoolVar(&showNoIDs, "no-ids", false, "Hide element IDs")
		cmd.Flags().IntVar(&showWidth, "width", 0, "Visualization width in columns (default: terminal width)")
		cmd.Flags().IntVar(&showHeight, "height", 0, "Visualization height in rows (default: terminal height)")
	}

	dragCmd.Flags().IntVar(&dragSteps, "steps", 10, "Number of pointer moves between press and release")
	dragCmd.Flags().StringVar(&dragTracePath, "trace", "", "Write the event trace as JSON lines to this file")
	dragCmd.Flags().BoolVar(&dragShow, "show", false, "Print the scene after the drag")

	// Disable color if requested, enable debug logging if requested
	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
		if debugMode {
			logging.SetDebug(true)
		}
	})
}

func main() {
	// Initialize logging
	if err := logging.Init(""); err != nil {
		fmt.Fprintln(os.Stderr, "warning: logging disabled:", err)
	}
	defer logging.Close()

	if err := rootCmd.Execute(); err != nil {
		printError(err.Error())
		logging.Close()
		os.Exit(1)
	}
}

// Helper functions

func printJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printError(msg string) {
	if noColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}

// loadSession loads the scene file and assembles a session
func loadSession() (*session.Session, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return session.New(cfg)
}

func writeTrace(sess *session.Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer f.Close()

	if _, err := sess.Trace.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write trace: %w", err)
	}
	return nil
}

// getVisualizationOptions builds options from flags
func getVisualizationOptions() output.VisualizationOptions {
	opts := output.DefaultVisualizationOptions()

	// Override with flags if set
	if showASCII {
		opts.UseUnicode = false
	}
	if showUnicode {
		opts.UseUnicode = true
	}
	if showNoIDs {
		opts.ShowIDs = false
	}
	if showWidth > 0 {
		opts.MaxWidth = showWidth
	}
	if showHeight > 0 {
		opts.MaxHeight = showHeight
	}

	return opts
}
