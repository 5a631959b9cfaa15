package static

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pelageech/staticserv/config"
	"golang.org/x/sync/errgroup"
)

const processObservePeriod = 1 * time.Second

// Listen binds the address of cfg. A failure is returned as *BindError.
func Listen(cfg *config.ServerConfig) (net.Listener, error) {
	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return nil, &BindError{Addr: cfg.Addr(), Err: err}
	}
	return ln, nil
}

// Run serves ln until ctx is cancelled. Connection errors are logged by
// net/http and never stop the accept loop. Run returns nil on cancellation.
func (s *Server) Run(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:  s,
		ErrorLog: s.logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve %s: %w", ln.Addr(), err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Closing the server")
		if err := srv.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		s.metrics.ObserveProcess(ctx, processObservePeriod)
		return nil
	})

	return g.Wait()
}
