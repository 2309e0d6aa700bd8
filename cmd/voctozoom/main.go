package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/voc/voctozoom/pkg/channel"
	"github.com/voc/voctozoom/pkg/config"
	"github.com/voc/voctozoom/pkg/controller"
	"github.com/voc/voctozoom/pkg/crop"
	"github.com/voc/voctozoom/pkg/interaction"
	"github.com/voc/voctozoom/pkg/logger"
	"github.com/voc/voctozoom/pkg/monitoring"
	zos "github.com/voc/voctozoom/pkg/os"
	"github.com/voc/voctozoom/pkg/remote"
	"github.com/voc/voctozoom/pkg/render"
	"github.com/voc/voctozoom/pkg/thread"
	"github.com/voc/voctozoom/pkg/window"
)

var Version = "?"

func run() {
	conf, err := config.NewConfig(os.Args[1:])
	if err != nil {
		logger.Default().Fatal().Err(err).Msg("Config load fail")
	}
	log := logger.NewConsole(conf.Debug, "zoom", conf.UI.NoColor)
	if conf.JSONLog {
		log = logger.New(conf.Debug).Tag("zoom")
	}
	log.Info().Msgf("version %s", Version)
	log.Debug().Msgf("conf: %+v", conf)

	if err = start(conf, log); err != nil {
		log.Fatal().Err(err).Msg("Stopped")
	}
	log.Info().Msg("Bye")
}

func start(conf *config.Config, log *logger.Logger) error {
	frame := conf.Frame.Geometry()

	var clients []*remote.Client
	defer func() {
		for _, c := range clients {
			if err := c.Close(); err != nil {
				log.Debug().Err(err).Msgf("Close %v", c.Name())
			}
		}
	}()
	for _, ch := range conf.Channels {
		c, err := remote.Connect(ch.Name, ch.Address, conf.Remote.ConnectTimeout, frame, log)
		if err != nil {
			return err
		}
		clients = append(clients, c)
	}

	panes, size := channel.Layout(frame, conf.UI.PaneScale, len(clients))
	channels := make([]*channel.Channel, len(clients))
	for i, c := range clients {
		channels[i] = channel.New(c.Name(), frame, panes[i], c, log)
	}

	win, err := window.Open(window.Config{Title: conf.UI.Title, Size: size, Frame: frame, Channels: len(channels)})
	if err != nil {
		return err
	}
	defer win.Close()

	if conf.Monitoring.IsEnabled() {
		mon := monitoring.New(conf.Monitoring, log)
		mon.Run()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mon.Shutdown(ctx); err != nil {
				log.Error().Err(err).Msgf("%v shutdown", mon)
			}
		}()
	}

	ctl := controller.Controller{
		Channels:    channels,
		Machine:     interaction.New(channels, crop.FactorOf(conf.Zoom.Step)),
		Events:      win,
		Renderer:    win,
		Screenshots: render.Screenshots{Folder: conf.Screenshot.Folder, Size: size},
		Refresh:     conf.Refresh,
		FailFast:    conf.Remote.FailFast,
		Done:        zos.ExpectTermination(),
		Log:         log,
	}
	if err = ctl.Run(); errors.Is(err, controller.ErrNoChannels) {
		log.Error().Msg("All channels are gone")
	}
	return err
}

func main() {
	thread.MainWrapMaybe(run)
}
