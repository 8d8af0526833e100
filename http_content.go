package classroom

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// RegisterContentRoutes mounts articles and lessons. The group must run
// behind ProtectedRoute; writes are gated to staff and admin.
func RegisterContentRoutes[T any](app router.Router[T], articles *ArticlesController, lessons *LessonsController) {
	editor := RequireRoles(RoleStaff, RoleAdmin)

	app.Get("/articles", articles.List).SetName("articles.list")
	app.Get("/articles/:id", articles.Show).SetName("articles.show")
	app.Post("/articles", editor(articles.Create)).SetName("articles.create")
	app.Patch("/articles/:id", editor(articles.Update)).SetName("articles.update")
	app.Delete("/articles/:id", editor(articles.Remove)).SetName("articles.remove")

	app.Get("/lessons", lessons.List).SetName("lessons.list")
	app.Get("/lessons/:id", lessons.Show).SetName("lessons.show")
	app.Post("/lessons", editor(lessons.Create)).SetName("lessons.create")
	app.Patch("/lessons/:id", editor(lessons.Update)).SetName("lessons.update")
	app.Delete("/lessons/:id", editor(lessons.Retire)).SetName("lessons.retire")
}

type ArticlesController struct {
	Logger Logger
	Repo   Articles
}

func NewArticlesController(repo Articles) *ArticlesController {
	return &ArticlesController{Logger: defLogger{}, Repo: repo}
}

func (a *ArticlesController) WithLogger(logger Logger) *ArticlesController {
	a.Logger = logger
	return a
}

// ArticlePayload is the create/update body for articles.
type ArticlePayload struct {
	Title      string     `form:"title" json:"title"`
	Body       string     `form:"body" json:"body"`
	Conclusion string     `form:"conclusion" json:"conclusion"`
	Author     string     `form:"author" json:"author"`
	Tags       []string   `form:"tags" json:"tags"`
	Date       *time.Time `form:"date" json:"date"`
}

// Validate will validate the payload
func (r ArticlePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&r.Body, validation.Required),
	)
}

func (a *ArticlesController) List(ctx router.Context) error {
	records, err := a.Repo.ListAll(ctx.Context())
	if err != nil {
		a.Logger.Error("articles list: %s", err)
		return WriteError(ctx, InternalError(err, "failed to list articles"))
	}
	return ctx.JSON(router.StatusOK, map[string]any{
		"articles": records,
		"count":    len(records),
	})
}

func (a *ArticlesController) Show(ctx router.Context) error {
	id, err := parseRecordID(ctx, "article")
	if err != nil {
		return WriteError(ctx, err)
	}

	record, err := a.Repo.FindByID(ctx.Context(), id)
	if err != nil {
		return WriteError(ctx, notFoundOrInternal(err, "article"))
	}
	return ctx.JSON(router.StatusOK, map[string]any{"article": record})
}

func (a *ArticlesController) Create(ctx router.Context) error {
	payload := new(ArticlePayload)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("articles create: parse payload: %s", err)
		return WriteError(ctx, ErrMalformedBody)
	}
	if err := payload.Validate(); err != nil {
		return WriteError(ctx, err)
	}

	record := &Article{
		Title:      payload.Title,
		Body:       payload.Body,
		Conclusion: payload.Conclusion,
		Author:     payload.Author,
		Tags:       payload.Tags,
		Date:       payload.Date,
	}

	// Authored content defaults to the caller's name.
	if record.Author == "" {
		if caller, err := CurrentUser(ctx); err == nil {
			record.Author = caller.Name
		}
	}

	created, err := a.Repo.Publish(ctx.Context(), record)
	if err != nil {
		a.Logger.Error("articles create: %s", err)
		return WriteError(ctx, InternalError(err, "failed to create article"))
	}

	return ctx.JSON(router.StatusCreated, map[string]any{"article": created})
}

func (a *ArticlesController) Update(ctx router.Context) error {
	id, err := parseRecordID(ctx, "article")
	if err != nil {
		return WriteError(ctx, err)
	}

	record, err := a.Repo.FindByID(ctx.Context(), id)
	if err != nil {
		return WriteError(ctx, notFoundOrInternal(err, "article"))
	}

	payload := new(ArticlePayload)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("articles update: parse payload: %s", err)
		return WriteError(ctx, ErrMalformedBody)
	}
	if err := payload.Validate(); err != nil {
		return WriteError(ctx, err)
	}

	record.Title = payload.Title
	record.Body = payload.Body
	record.Conclusion = payload.Conclusion
	if payload.Author != "" {
		record.Author = payload.Author
	}
	if payload.Tags != nil {
		record.Tags = payload.Tags
	}
	if payload.Date != nil {
		record.Date = payload.Date
	}

	updated, err := a.Repo.Amend(ctx.Context(), record)
	if err != nil {
		a.Logger.Error("articles update: %s", err)
		return WriteError(ctx, InternalError(err, "failed to update article"))
	}

	return ctx.JSON(router.StatusOK, map[string]any{"article": updated})
}

// Remove drops the article row. Articles are not identity records, so
// the delete is hard.
func (a *ArticlesController) Remove(ctx router.Context) error {
	id, err := parseRecordID(ctx, "article")
	if err != nil {
		return WriteError(ctx, err)
	}

	if err := a.Repo.Remove(ctx.Context(), id); err != nil {
		return WriteError(ctx, notFoundOrInternal(err, "article"))
	}

	return ctx.JSON(router.StatusOK, map[string]any{"deleted": id.String()})
}

type LessonsController struct {
	Logger Logger
	Repo   Lessons
}

func NewLessonsController(repo Lessons) *LessonsController {
	return &LessonsController{Logger: defLogger{}, Repo: repo}
}

func (l *LessonsController) WithLogger(logger Logger) *LessonsController {
	l.Logger = logger
	return l
}

// LessonPayload is the create/update body for lessons.
type LessonPayload struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
}

// Validate will validate the payload
func (r LessonPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&r.Description, validation.Required),
	)
}

func (l *LessonsController) List(ctx router.Context) error {
	records, err := l.Repo.ListAll(ctx.Context())
	if err != nil {
		l.Logger.Error("lessons list: %s", err)
		return WriteError(ctx, InternalError(err, "failed to list lessons"))
	}
	return ctx.JSON(router.StatusOK, map[string]any{
		"lessons": records,
		"count":   len(records),
	})
}

func (l *LessonsController) Show(ctx router.Context) error {
	id, err := parseRecordID(ctx, "lesson")
	if err != nil {
		return WriteError(ctx, err)
	}

	record, err := l.Repo.FindByID(ctx.Context(), id)
	if err != nil {
		return WriteError(ctx, notFoundOrInternal(err, "lesson"))
	}
	return ctx.JSON(router.StatusOK, map[string]any{"lesson": record})
}

func (l *LessonsController) Create(ctx router.Context) error {
	payload := new(LessonPayload)
	if err := ctx.Bind(payload); err != nil {
		l.Logger.Error("lessons create: parse payload: %s", err)
		return WriteError(ctx, ErrMalformedBody)
	}
	if err := payload.Validate(); err != nil {
		return WriteError(ctx, err)
	}

	created, err := l.Repo.Add(ctx.Context(), &Lesson{
		Title:       payload.Title,
		Description: payload.Description,
	})
	if err != nil {
		l.Logger.Error("lessons create: %s", err)
		return WriteError(ctx, InternalError(err, "failed to create lesson"))
	}

	return ctx.JSON(router.StatusCreated, map[string]any{"lesson": created})
}

func (l *LessonsController) Update(ctx router.Context) error {
	id, err := parseRecordID(ctx, "lesson")
	if err != nil {
		return WriteError(ctx, err)
	}

	record, err := l.Repo.FindByID(ctx.Context(), id)
	if err != nil {
		return WriteError(ctx, notFoundOrInternal(err, "lesson"))
	}

	payload := new(LessonPayload)
	if err := ctx.Bind(payload); err != nil {
		l.Logger.Error("lessons update: parse payload: %s", err)
		return WriteError(ctx, ErrMalformedBody)
	}
	if err := payload.Validate(); err != nil {
		return WriteError(ctx, err)
	}

	record.Title = payload.Title
	record.Description = payload.Description

	updated, err := l.Repo.Amend(ctx.Context(), record)
	if err != nil {
		l.Logger.Error("lessons update: %s", err)
		return WriteError(ctx, InternalError(err, "failed to update lesson"))
	}

	return ctx.JSON(router.StatusOK, map[string]any{"lesson": updated})
}

// Retire soft deletes the lesson; subsequent reads no longer see it.
func (l *LessonsController) Retire(ctx router.Context) error {
	id, err := parseRecordID(ctx, "lesson")
	if err != nil {
		return WriteError(ctx, err)
	}

	if err := l.Repo.Retire(ctx.Context(), id); err != nil {
		return WriteError(ctx, notFoundOrInternal(err, "lesson"))
	}

	return ctx.JSON(router.StatusOK, map[string]any{"retired": id.String()})
}

func parseRecordID(ctx router.Context, kind string) (uuid.UUID, error) {
	raw := ctx.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New(kind+" id must be a valid uuid", errors.CategoryBadInput).
			WithTextCode("INVALID_ID").
			WithCode(errors.CodeBadRequest).
			WithMetadata(map[string]any{"id": raw})
	}
	return id, nil
}

func notFoundOrInternal(err error, kind string) error {
	if errors.IsNotFound(err) {
		return errors.New(kind+" not found", errors.CategoryNotFound).
			WithTextCode("NOT_FOUND").
			WithCode(errors.CodeNotFound)
	}
	return InternalError(err, "failed to access "+kind)
}
