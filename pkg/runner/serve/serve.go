package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tableflip.dev/kioku/pkg/collection"
	"tableflip.dev/kioku/pkg/progress"
	"tableflip.dev/kioku/pkg/state"
	"tableflip.dev/kioku/pkg/store"
	"tableflip.dev/kioku/pkg/view"
)

// Serve hosts the collections over HTTP for the browser UI: a JSON API
// for composed views plus optional static file hosting. The composed
// order is derived per request; only state records are written.
type Serve struct {
	Addr        string
	StaticDir   string
	Persistence store.Persistence

	mu    sync.RWMutex
	metas []collection.Meta
}

func (s *Serve) Do(ctx context.Context) error {
	if s.Persistence == nil {
		return errors.New("can not serve, no persistence")
	}
	if s.Addr == "" {
		s.Addr = ":8351"
	}

	s.refreshMetas(ctx)
	if events, err := s.Persistence.Watch(ctx); err != nil {
		fmt.Printf("store watch unavailable: %v\n", err)
	} else {
		go func() {
			for range events {
				s.refreshMetas(ctx)
			}
		}()
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), cors.Default())

	api := r.Group("/api")
	api.GET("/collections", s.listCollections)
	api.GET("/collections/:name", s.getCollection(ctx))
	api.GET("/collections/:name/state", s.getState)
	api.PUT("/collections/:name/state", s.putState)

	if s.StaticDir != "" {
		r.Static("/app", s.StaticDir)
	}

	srv := &http.Server{Addr: s.Addr, Handler: r}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	fmt.Printf("serving on %s\n", s.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Serve) refreshMetas(ctx context.Context) {
	metas := s.Persistence.CollectionsMeta(ctx, "")
	s.mu.Lock()
	s.metas = metas
	s.mu.Unlock()
}

func (s *Serve) lookupMeta(name string) (collection.Meta, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, meta := range s.metas {
		if meta.Name == name {
			return meta, true
		}
	}
	return collection.Meta{}, false
}

func (s *Serve) listCollections(c *gin.Context) {
	s.mu.RLock()
	metas := s.metas
	s.mu.RUnlock()
	c.JSON(http.StatusOK, metas)
}

// getCollection returns the composed view for a collection's persisted
// state. ?seed= and ?filter= override the persisted values for one
// request without writing them back.
func (s *Serve) getCollection(ctx context.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		meta, ok := s.lookupMeta(name)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
			return
		}

		st, err := s.Persistence.State(name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if raw, set := c.GetQuery("seed"); set {
			if raw == "" {
				st.ClearShuffle()
			} else {
				seed, err := strconv.ParseUint(raw, 10, 32)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "seed must be a 32-bit unsigned integer"})
					return
				}
				st.Shuffle(uint32(seed))
			}
		}
		if raw, set := c.GetQuery("filter"); set {
			st.StudyFilter = raw
		}

		var tracker progress.Tracker
		if kind := progress.KindForCategory(meta.Category); kind != "" {
			book, err := s.Persistence.Progress(kind)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			tracker = book
		}

		cards := s.Persistence.List(ctx, name)
		v := view.Compose(cards, st, tracker)
		c.JSON(http.StatusOK, gin.H{
			"name":     meta.Name,
			"category": meta.Category,
			"total":    len(cards),
			"view":     v,
		})
	}
}

func (s *Serve) getState(c *gin.Context) {
	name := c.Param("name")
	if _, ok := s.lookupMeta(name); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return
	}
	st, err := s.Persistence.State(name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Serve) putState(c *gin.Context) {
	name := c.Param("name")
	if _, ok := s.lookupMeta(name); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return
	}
	var st state.State
	if err := c.ShouldBindJSON(&st); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st.Normalize()
	if err := s.Persistence.SetState(name, st); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}
