package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/pable/go-shotcharts/internal/config"
)

var envVars = []string{
	"SHOTCHARTS_CONFIG",
	"SHOTCHARTS_DENSITY",
	"SHOTCHARTS_THEME",
	"SHOTCHARTS_MARKER",
	"SHOTCHARTS_IMAGE_SIZE",
	"SHOTCHARTS_OUT_DIR",
	"SHOTCHARTS_MIRROR_X",
	"SHOTCHARTS_BASE_URL",
}

func clearConfigEnvVars(t *testing.T) {
	for _, v := range envVars {
		t.Setenv(v, "")
		_ = os.Unsetenv(v)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shotcharts.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		clearConfigEnvVars(t)

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load("")

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Density, convey.ShouldEqual, "medium")
				convey.So(cfg.Theme, convey.ShouldEqual, "dark")
				convey.So(cfg.Marker, convey.ShouldEqual, "hexagon")
				convey.So(cfg.ImageSize, convey.ShouldEqual, "large")
				convey.So(cfg.OutDir, convey.ShouldEqual, ".")
				convey.So(cfg.MirrorX, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			path := writeConfigFile(t, `
density: large
theme: light
marker: circle
image_size: small
out_dir: /tmp/charts
mirror_x: true
`)
			cfg, err := config.Load(path)

			convey.Convey("Then it should use the file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Density, convey.ShouldEqual, "large")
				convey.So(cfg.Theme, convey.ShouldEqual, "light")
				convey.So(cfg.Marker, convey.ShouldEqual, "circle")
				convey.So(cfg.ImageSize, convey.ShouldEqual, "small")
				convey.So(cfg.OutDir, convey.ShouldEqual, "/tmp/charts")
				convey.So(cfg.MirrorX, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the file path comes from the environment", func() {
			path := writeConfigFile(t, "density: small\n")
			t.Setenv("SHOTCHARTS_CONFIG", path)

			cfg, err := config.Load("")

			convey.Convey("Then the file is loaded", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Density, convey.ShouldEqual, "small")
			})
		})

		convey.Convey("When env vars and a file are both set", func() {
			path := writeConfigFile(t, "density: small\ntheme: light\n")
			t.Setenv("SHOTCHARTS_DENSITY", "large")
			t.Setenv("SHOTCHARTS_OUT_DIR", "/srv/out")

			cfg, err := config.Load(path)

			convey.Convey("Then env vars take precedence", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Density, convey.ShouldEqual, "large")
				convey.So(cfg.Theme, convey.ShouldEqual, "light")
				convey.So(cfg.OutDir, convey.ShouldEqual, "/srv/out")
			})
		})

		convey.Convey("When an option is out of range", func() {
			t.Setenv("SHOTCHARTS_DENSITY", "huge")

			_, err := config.Load("")

			convey.Convey("Then loading fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the file does not exist", func() {
			_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))

			convey.Convey("Then loading fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestConfigGrid(t *testing.T) {
	convey.Convey("Given the default config", t, func() {
		cfg := config.New()

		convey.Convey("The grid has 30 columns", func() {
			g, err := cfg.Grid()
			convey.So(err, convey.ShouldBeNil)
			convey.So(g.BinsX, convey.ShouldEqual, 30)
		})

		convey.Convey("An unknown theme fails validation", func() {
			cfg.Theme = "neon"
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		})
	})
}
