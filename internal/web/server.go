package web

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bigredeye/forfeits/internal/config"
	"github.com/bigredeye/forfeits/internal/database"
	"github.com/bigredeye/forfeits/internal/fpl"
	webstatic "github.com/bigredeye/forfeits/web"
)

type server struct {
	config *config.Config
	logger *zap.Logger

	db  *database.DataBase
	fpl *fpl.Client
}

func newServer(
	config *config.Config,
	logger *zap.Logger,
	db *database.DataBase,
	fpl *fpl.Client,
) (*server, error) {
	return &server{
		config: config,
		logger: logger,
		db:     db,
		fpl:    fpl,
	}, nil
}

func buildHTMLTemplates(funcMap template.FuncMap) (*template.Template, error) {
	tmpl := template.New("").Funcs(funcMap)
	err := fs.WalkDir(webstatic.StaticTemplates, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		bytes, err := fs.ReadFile(webstatic.StaticTemplates, path)
		if err != nil {
			return err
		}
		template.Must(tmpl.New("/" + path).Parse(string(bytes)))
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to collect html templates")
	}

	return tmpl, nil
}

func sessionKey(configured string, size int) ([]byte, error) {
	if configured != "" {
		key, err := hex.DecodeString(configured)
		if err != nil {
			return nil, errors.Wrap(err, "Failed to decode hex session key")
		}
		return key, nil
	}

	// No key configured: mint a random one. Sessions won't survive a
	// restart, which only costs the user their league selection.
	key := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Wrap(err, "Failed to generate session key")
	}
	return key, nil
}

func setupSessions(s *server, r *gin.Engine) error {
	authKey, err := sessionKey(s.config.Server.Cookies.AuthenticationKey, 32)
	if err != nil {
		return err
	}
	encryptKey, err := sessionKey(s.config.Server.Cookies.EncryptionKey, 32)
	if err != nil {
		return err
	}
	store := cookie.NewStore(authKey, encryptKey)
	store.Options(sessions.Options{
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("session", store))
	return nil
}

func (s *server) run() error {
	funcs := template.FuncMap{
		"inc": func(i int) int {
			return i + 1
		},
		"joinInts": func(values []int) string {
			parts := make([]string, 0, len(values))
			for _, value := range values {
				parts = append(parts, fmt.Sprint(value))
			}
			return strings.Join(parts, ", ")
		},
	}
	tmpl, err := buildHTMLTemplates(funcs)
	if err != nil {
		return errors.Wrap(err, "Failed to build html templates")
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(ginzap.Ginzap(s.logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(s.logger, true))

	r.SetHTMLTemplate(tmpl)

	if err := setupSessions(s, r); err != nil {
		return err
	}
	setupPagesService(s, r)
	setupApiService(s, r)

	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong "+fmt.Sprint(time.Now().Unix()))
	})

	r.StaticFS("/static", http.FS(webstatic.StaticContent))

	s.logger.Info("Starting server", zap.String("bind_address", s.config.Server.ListenAddress))
	return r.Run(s.config.Server.ListenAddress)
}
