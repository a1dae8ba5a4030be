package auth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// authorize runs the interactive installed-app handshake: a loopback
// listener receives the authorization code after the user approves access in
// the browser.
func (p *Provider) authorize(ctx context.Context) (*oauth2.Token, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("start redirect listener: %w", err)
	}
	defer ln.Close()

	conf := *p.conf
	conf.RedirectURL = fmt.Sprintf("http://%s/", ln.Addr().String())

	state := fmt.Sprintf("gsync-%d", time.Now().UnixNano())
	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline)

	fmt.Println("Open the following URL in your browser to authorize gsync:")
	fmt.Println()
	fmt.Println("  " + authURL)
	fmt.Println()

	type result struct {
		code string
		err  error
	}
	resCh := make(chan result, 1)

	srv := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("state") != state {
				http.Error(w, "state mismatch", http.StatusBadRequest)
				resCh <- result{err: fmt.Errorf("authorization state mismatch")}
				return
			}
			if errMsg := q.Get("error"); errMsg != "" {
				http.Error(w, errMsg, http.StatusBadRequest)
				resCh <- result{err: fmt.Errorf("authorization denied: %s", errMsg)}
				return
			}
			fmt.Fprintln(w, "gsync is authorized. You can close this tab.")
			resCh <- result{code: q.Get("code")}
		}),
	}
	go srv.Serve(ln)
	defer srv.Close()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resCh:
		if res.err != nil {
			return nil, res.err
		}
		tok, err := conf.Exchange(ctx, res.code)
		if err != nil {
			return nil, fmt.Errorf("exchange authorization code: %w", err)
		}
		return tok, nil
	}
}
