package http

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/gopherblog/internal/logging"
	"github.com/dmitrijs2005/gopherblog/internal/server/models"
	"github.com/dmitrijs2005/gopherblog/internal/server/services"
	"github.com/dmitrijs2005/gopherblog/internal/server/storage"
	"github.com/gin-gonic/gin"
)

const defaultMaxUpload = 5 << 20

// UserService is what the account handlers need from the service layer.
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, upd services.ProfileUpdate, image *storage.Image) (*models.User, error)
}

// PostService is what the blog handlers need from the service layer.
type PostService interface {
	Create(ctx context.Context, authorID string, in services.CreatePostInput) (*models.Post, error)
	List(ctx context.Context) ([]*models.PostWithAuthor, error)
	Delete(ctx context.Context, userID, postID string) error
}

// TokenVerifier turns a bearer token into the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Deps wires the router to the rest of the server.
type Deps struct {
	Users          UserService
	Posts          PostService
	Images         storage.ImageStore
	Verifier       TokenVerifier
	Logger         logging.Logger
	CORSOrigin     string
	MaxUploadBytes int64
}

type handler struct {
	users     UserService
	posts     PostService
	images    storage.ImageStore
	logger    logging.Logger
	maxUpload int64
}

// NewRouter builds the gin engine with every route and middleware.
func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	maxUpload := d.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}

	h := &handler{
		users:     d.Users,
		posts:     d.Posts,
		images:    d.Images,
		logger:    logger.With("module", "http"),
		maxUpload: maxUpload,
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(RequestID(), AccessLog(h.logger), Recovery(h.logger), CORS(d.CORSOrigin))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/uploads/:name", h.serveUpload)

	api := r.Group("/api")
	api.POST("/signup", h.signup)
	api.POST("/login", h.login)
	api.GET("/blogs", h.listPosts)

	protected := api.Group("")
	protected.Use(AuthGate(d.Verifier))
	{
		protected.POST("/logout", h.logout)
		protected.GET("/user", h.profile)
		protected.PUT("/user/update", h.updateProfile)
		protected.POST("/blogs", h.createPost)
		protected.DELETE("/blogs/:id", h.deletePost)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	return r
}
