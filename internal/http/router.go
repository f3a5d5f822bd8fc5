package http

import (
	"net/http"
	"strings"
)

// RouterConfig lists the handlers the router dispatches to. Nil handlers
// leave their routes unregistered.
type RouterConfig struct {
	Sessions   *SessionHandler
	Rooms      *RoomHandler
	Artists    *ArtistHandler
	Albums     *AlbumHandler
	Tracks     *TrackHandler
	Members    *MemberHandler
	Equipment  *EquipmentHandler
	Invoices   *InvoiceHandler
	Studio     *StudioHandler
	Dashboard  *DashboardHandler
	Metrics    http.Handler
	Middleware []func(http.Handler) http.Handler
}

// NewRouter assembles the HTTP mux and wraps it with the configured
// middleware, applied so the first entry is the outermost.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if cfg.Metrics != nil {
		mux.Handle("/metrics", cfg.Metrics)
	}

	if cfg.Sessions != nil {
		mux.HandleFunc("/sessions", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Sessions.List(w, r)
			case http.MethodPost:
				cfg.Sessions.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/sessions/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/sessions/")
			if rest == "" {
				http.NotFound(w, r)
				return
			}
			id, tail, hasTail := strings.Cut(rest, "/")
			r = r.WithContext(ContextWithResourceID(r.Context(), id))
			if hasTail {
				if tail != "status" {
					http.NotFound(w, r)
					return
				}
				if r.Method != http.MethodPut {
					methodNotAllowed(w, http.MethodPut)
					return
				}
				cfg.Sessions.UpdateStatus(w, r)
				return
			}
			switch r.Method {
			case http.MethodGet:
				cfg.Sessions.Get(w, r)
			case http.MethodPatch:
				cfg.Sessions.Update(w, r)
			case http.MethodDelete:
				cfg.Sessions.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPatch, http.MethodDelete)
			}
		})
		mux.HandleFunc("/availability", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Sessions.Availability(w, r)
		})
	}

	if cfg.Rooms != nil {
		registerCollection(mux, "/rooms", collectionHandlers{
			list:   cfg.Rooms.List,
			create: cfg.Rooms.Create,
			get:    cfg.Rooms.Get,
			update: cfg.Rooms.Update,
			remove: cfg.Rooms.Delete,
		})
	}
	if cfg.Artists != nil {
		registerCollection(mux, "/artists", collectionHandlers{
			list:   cfg.Artists.List,
			create: cfg.Artists.Create,
			get:    cfg.Artists.Get,
			update: cfg.Artists.Update,
			remove: cfg.Artists.Delete,
		})
	}
	if cfg.Albums != nil {
		registerCollection(mux, "/albums", collectionHandlers{
			list:   cfg.Albums.List,
			create: cfg.Albums.Create,
			get:    cfg.Albums.Get,
			update: cfg.Albums.Update,
			remove: cfg.Albums.Delete,
		})
	}
	if cfg.Tracks != nil {
		registerCollection(mux, "/tracks", collectionHandlers{
			list:   cfg.Tracks.List,
			create: cfg.Tracks.Create,
			get:    cfg.Tracks.Get,
			update: cfg.Tracks.Update,
			remove: cfg.Tracks.Delete,
		})
	}
	if cfg.Members != nil {
		registerCollection(mux, "/members", collectionHandlers{
			list:   cfg.Members.List,
			create: cfg.Members.Create,
			get:    cfg.Members.Get,
			update: cfg.Members.Update,
			remove: cfg.Members.Delete,
		})
	}
	if cfg.Equipment != nil {
		registerCollection(mux, "/equipment", collectionHandlers{
			list:   cfg.Equipment.List,
			create: cfg.Equipment.Create,
			get:    cfg.Equipment.Get,
			update: cfg.Equipment.Update,
			remove: cfg.Equipment.Delete,
		})
	}

	if cfg.Invoices != nil {
		mux.HandleFunc("/invoices", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Invoices.List(w, r)
			case http.MethodPost:
				cfg.Invoices.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/invoices/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/invoices/")
			if rest == "" {
				http.NotFound(w, r)
				return
			}
			if rest == "calculate" {
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.Invoices.Calculate(w, r)
				return
			}
			r = r.WithContext(ContextWithResourceID(r.Context(), rest))
			switch r.Method {
			case http.MethodGet:
				cfg.Invoices.Get(w, r)
			case http.MethodPut:
				cfg.Invoices.Update(w, r)
			case http.MethodDelete:
				cfg.Invoices.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
			}
		})
	}

	if cfg.Studio != nil {
		mux.HandleFunc("/studio", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Studio.GetStudio(w, r)
			case http.MethodPut:
				cfg.Studio.UpdateStudio(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut)
			}
		})
		mux.HandleFunc("/settings", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Studio.GetSettings(w, r)
			case http.MethodPut:
				cfg.Studio.UpdateSettings(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut)
			}
		})
	}

	if cfg.Dashboard != nil {
		mux.HandleFunc("/dashboard", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Dashboard.Overview(w, r)
		})
		mux.HandleFunc("/reports/room-utilization", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Dashboard.RoomUtilization(w, r)
		})
		mux.HandleFunc("/reports/revenue", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Dashboard.Revenue(w, r)
		})
	}

	var handler http.Handler = mux
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

type collectionHandlers struct {
	list   http.HandlerFunc
	create http.HandlerFunc
	get    http.HandlerFunc
	update http.HandlerFunc
	remove http.HandlerFunc
}

// registerCollection wires the standard list/create and get/update/delete
// routes shared by the catalog entities.
func registerCollection(mux *http.ServeMux, base string, h collectionHandlers) {
	mux.HandleFunc(base, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			methodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	})
	mux.HandleFunc(base+"/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, base+"/")
		if id == "" {
			http.NotFound(w, r)
			return
		}
		r = r.WithContext(ContextWithResourceID(r.Context(), id))
		switch r.Method {
		case http.MethodGet:
			h.get(w, r)
		case http.MethodPut:
			h.update(w, r)
		case http.MethodDelete:
			h.remove(w, r)
		default:
			methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
		}
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
