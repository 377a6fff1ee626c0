package web

import (
	"context"
	"errors"
	"html/template"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/san-kum/cvterm/internal/anim"
	"github.com/san-kum/cvterm/internal/config"
	"github.com/san-kum/cvterm/internal/export"
	"github.com/san-kum/cvterm/internal/resume"
)

// Server exposes the résumé and a live torus over HTTP.
type Server struct {
	cfg      *config.Config
	resume   *resume.Resume
	visitors *Store
	engine   *gin.Engine
}

// New wires the routes. visitors may be nil to disable tracking.
func New(cfg *config.Config, r *resume.Resume, visitors *Store) *Server {
	s := &Server{cfg: cfg, resume: r, visitors: visitors}

	e := gin.New()
	e.Use(gin.Logger(), gin.Recovery())
	if visitors != nil {
		e.Use(Track(visitors))
	}
	e.SetHTMLTemplate(template.Must(template.New("index").Parse(indexHTML)))

	e.GET("/", s.index)
	e.GET("/api/resume", s.apiResume)
	e.GET("/api/sections/:id", s.apiSection)
	e.GET("/frame/torus", s.torusFrame)
	e.GET("/frame/torus.svg", s.torusSVG)
	e.GET("/stream/torus", s.torusStream)
	e.GET("/stats", s.stats)

	s.engine = e
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine}
	errc := make(chan error, 1)
	go func() {
		log.Printf("serving on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index", gin.H{
		"name":     s.resume.Contact.Name,
		"sections": resume.Sections(s.resume),
		"frame":    s.newTorus().Render(0, 0),
	})
}

func (s *Server) apiResume(c *gin.Context) {
	c.JSON(http.StatusOK, s.resume)
}

func (s *Server) apiSection(c *gin.Context) {
	sec, ok := resume.Find(s.resume, c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown section"})
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(sec.Markdown))
}

func (s *Server) newTorus() *anim.Torus {
	t := anim.NewTorus(s.cfg.Torus.Width, s.cfg.Torus.Height)
	if s.cfg.Torus.TubeSteps > 0 {
		t.TubeSteps = s.cfg.Torus.TubeSteps
	}
	if s.cfg.Torus.RingSteps > 0 {
		t.RingSteps = s.cfg.Torus.RingSteps
	}
	return t
}

func (s *Server) torusFrame(c *gin.Context) {
	if frame, ok := s.queryFrame(c); ok {
		c.String(http.StatusOK, frame)
	}
}

func (s *Server) torusSVG(c *gin.Context) {
	if frame, ok := s.queryFrame(c); ok {
		c.Data(http.StatusOK, "image/svg+xml", []byte(export.FrameToSVG(frame, export.DefaultStyle)))
	}
}

// queryFrame renders the torus at the a and b query angles, answering 400
// itself on bad input.
func (s *Server) queryFrame(c *gin.Context) (string, bool) {
	a, err := floatQuery(c, "a")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a: " + err.Error()})
		return "", false
	}
	b, err := floatQuery(c, "b")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "b: " + err.Error()})
		return "", false
	}
	return s.newTorus().Render(a, b), true
}

func floatQuery(c *gin.Context, name string) (float64, error) {
	v := c.Query(name)
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(v, 64)
}

// torusStream pushes frames as server-sent events. Every client spins its
// own torus. An optional frames query bounds the stream.
func (s *Server) torusStream(c *gin.Context) {
	limit := 0
	if v := c.Query("frames"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "frames must be a non-negative integer"})
			return
		}
		limit = n
	}

	t := s.newTorus()
	spin := anim.NewSpin(t)
	spin.StepA = s.cfg.Torus.StepA
	spin.StepB = s.cfg.Torus.StepB

	interval := anim.TorusInterval
	if s.cfg.Torus.FPS > 0 {
		interval = time.Second / time.Duration(s.cfg.Torus.FPS)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sent := 0
	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			c.SSEvent("frame", spin.Step(t.Width, t.Height))
			sent++
			return limit == 0 || sent < limit
		}
	})
}

func (s *Server) stats(c *gin.Context) {
	if s.visitors == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "visitor tracking disabled"})
		return
	}
	st, err := s.visitors.Stats()
	if err != nil {
		log.Printf("stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
		return
	}
	c.JSON(http.StatusOK, st)
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{if .name}}{{.name}} · {{end}}Résumé</title>
<style>
body { background: #0d0d0d; color: #00ff00; font-family: monospace; margin: 2em; }
pre { white-space: pre-wrap; }
#torus { white-space: pre; line-height: 1; color: #88ff88; border: 1px solid #005500; display: inline-block; padding: 0 1ch; }
section { border-top: 1px dashed #005500; margin-top: 1em; }
</style>
</head>
<body>
<pre id="torus">{{.frame}}</pre>
{{range .sections}}
<section id="{{.ID}}">
<pre>{{.Markdown}}</pre>
</section>
{{end}}
<script>
const torus = document.getElementById("torus");
const src = new EventSource("/stream/torus");
src.addEventListener("frame", (e) => { torus.textContent = e.data; });
</script>
</body>
</html>
`
