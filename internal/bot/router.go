package bot

import (
	"context"
	"sort"
	"strings"
)

// Request is one inbound command from a user.
type Request struct {
	UserID  int64
	Command Command
}

// HandlerFunc produces the reply text for a command.
type HandlerFunc func(ctx context.Context, req Request) (string, error)

// Router maps command names to handlers. Prefix routes match names like
// buy_<feature> after exact routes are tried.
type Router struct {
	exact    map[string]HandlerFunc
	prefixes map[string]HandlerFunc
}

func NewRouter() *Router {
	return &Router{
		exact:    make(map[string]HandlerFunc),
		prefixes: make(map[string]HandlerFunc),
	}
}

func (r *Router) Handle(name string, h HandlerFunc) {
	r.exact[strings.ToLower(name)] = h
}

func (r *Router) HandlePrefix(prefix string, h HandlerFunc) {
	r.prefixes[strings.ToLower(prefix)] = h
}

// Route returns the handler for name and the metrics label for it. Prefix
// routes report the prefix so per-feature names do not multiply series.
func (r *Router) Route(name string) (HandlerFunc, string, bool) {
	if h, ok := r.exact[name]; ok {
		return h, name, true
	}
	for prefix, h := range r.prefixes {
		if strings.HasPrefix(name, prefix) && len(name) > len(prefix) {
			return h, strings.TrimSuffix(prefix, "_"), true
		}
	}
	return nil, "", false
}

// Names lists exact routes, sorted.
func (r *Router) Names() []string {
	out := make([]string, 0, len(r.exact))
	for name := range r.exact {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
