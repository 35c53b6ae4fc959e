package main

import (
	goflag "flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/olio-render/olio/pkg/core"
	"github.com/olio-render/olio/pkg/loaders"
	"github.com/olio-render/olio/pkg/renderer"
	"github.com/olio-render/olio/pkg/scene"
	"github.com/olio-render/olio/web/server"
)

// glogLogger adapts glog to the renderer's logger interface
type glogLogger struct{}

func (glogLogger) Printf(format string, args ...interface{}) {
	glog.Infof(format, args...)
}

// loadScene builds the scene to render: a raytra file when given, the
// built-in demo scene otherwise
func loadScene(sceneFile string) (*scene.Scene, error) {
	if sceneFile == "" {
		return scene.NewDefaultScene(), nil
	}
	return loaders.LoadRaytra(sceneFile)
}

// resolveSize picks the output image size: explicit flags win, otherwise
// the scene's own size is used
func resolveSize(s *scene.Scene, width, height int) (int, int) {
	sceneWidth, sceneHeight := s.ImageSize()
	if width <= 0 {
		width = sceneWidth
	}
	if height <= 0 {
		height = sceneHeight
	}
	return width, height
}

// outputPath returns the explicit output file, or a timestamped default
// under output/
func outputPath(output string, now time.Time) string {
	if output != "" {
		return output
	}
	return filepath.Join("output", fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

func newRenderCmd() *cobra.Command {
	var output string
	var width, height int
	var gamma float64

	cmd := &cobra.Command{
		Use:   "render [scene-file]",
		Short: "Render a scene to a PNG file",
		Long: `Render a raytra scene file to a PNG image.
Without a scene file the built-in demo scene is rendered.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sceneFile := ""
			if len(args) > 0 {
				sceneFile = args[0]
			}

			s, err := loadScene(sceneFile)
			if err != nil {
				return err
			}

			width, height := resolveSize(s, viper.GetInt("width"), viper.GetInt("height"))
			gamma := viper.GetFloat64("gamma")

			var logger core.Logger = glogLogger{}
			rt := renderer.NewRaytracer(s, width, height, logger)
			img, stats := rt.Render()
			glog.Infof("Rendered %d pixels in %v", stats.TotalPixels, stats.Elapsed)

			filename := outputPath(viper.GetString("output"), time.Now())
			if dir := filepath.Dir(filename); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("failed to create output directory: %v", err)
				}
			}
			if err := img.WritePNG(filename, gamma); err != nil {
				return err
			}

			fmt.Printf("Render saved as %s\n", filename)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output PNG file (default output/render_<timestamp>.png)")
	cmd.Flags().IntVar(&width, "width", 0, "Image width in pixels (default: scene setting)")
	cmd.Flags().IntVar(&height, "height", 0, "Image height in pixels (default: scene setting)")
	cmd.Flags().Float64Var(&gamma, "gamma", 2.2, "Display gamma for PNG output (1 disables correction)")
	viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	viper.BindPFlag("width", cmd.Flags().Lookup("width"))
	viper.BindPFlag("height", cmd.Flags().Lookup("height"))
	viper.BindPFlag("gamma", cmd.Flags().Lookup("gamma"))

	return cmd
}

func newServeCmd() *cobra.Command {
	var port int
	var sceneFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web preview server",
		RunE: func(cmd *cobra.Command, args []string) error {
			webServer := server.NewServer(viper.GetInt("port"), viper.GetString("scene"))
			glog.Infof("Visit http://localhost:%d to start rendering", viper.GetInt("port"))
			return webServer.Start()
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "Port to serve on")
	cmd.Flags().StringVar(&sceneFile, "scene", "", "Scene file to serve (default: built-in demo scene)")
	viper.BindPFlag("port", cmd.Flags().Lookup("port"))
	viper.BindPFlag("scene", cmd.Flags().Lookup("scene"))

	return cmd
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "olio",
		Short:         "A Whitted-style raytracer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// glog registers its flags (-v, -logtostderr, ...) on the standard
	// flag set
	cmd.PersistentFlags().AddGoFlagSet(goflag.CommandLine)

	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newServeCmd())
	return cmd
}

func main() {
	viper.SetEnvPrefix("OLIO")
	viper.AutomaticEnv()

	defer glog.Flush()
	if err := newRootCmd().Execute(); err != nil {
		glog.Errorf("%v", err)
		os.Exit(1)
	}
}
