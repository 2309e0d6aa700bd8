// Testsrc is a fake video source for trying out voctozoom without a mixer.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/pflag"
	"github.com/voc/voctozoom/pkg/geometry"
	"github.com/voc/voctozoom/pkg/logger"
	"github.com/voc/voctozoom/pkg/network/socket"
	zos "github.com/voc/voctozoom/pkg/os"
	"github.com/voc/voctozoom/pkg/source"
)

func main() {
	port := pflag.Int("port", 20000, "TCP port, the next free one is taken if busy")
	wsPort := pflag.Int("ws-port", 0, "Websocket port, 0 disables")
	width := pflag.Int("width", 1280, "Frame width")
	height := pflag.Int("height", 720, "Frame height")
	debug := pflag.Bool("debug", false, "Enable debug logging")
	pflag.Parse()

	log := logger.NewConsole(*debug, "src", false)
	frame := geometry.Frame{W: *width, H: *height}
	if frame.W <= 0 || frame.H <= 0 {
		log.Fatal().Msgf("Bad frame size %v", frame)
	}
	src := source.New(frame, log)

	l, err := socket.ListenPortRoll("tcp", *port)
	if err != nil {
		log.Fatal().Err(err).Msg("Listen")
	}
	log.Info().Msgf("Serving %v on tcp://%v", frame, l.Addr())
	go func() {
		if err := src.Serve(l); err != nil {
			log.Error().Err(err).Msg("Serve")
		}
	}()

	var srv *http.Server
	if *wsPort > 0 {
		srv = &http.Server{Addr: fmt.Sprintf(":%d", *wsPort), Handler: src}
		log.Info().Msgf("Serving %v on ws://%v", frame, srv.Addr)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("Websocket server")
			}
		}()
	}

	<-zos.ExpectTermination()
	_ = l.Close()
	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
