package classroom

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-router"
)

// RegisterFileRoutes mounts the file manager. The group must run behind
// ProtectedRoute; writes are gated to staff and admin.
func RegisterFileRoutes[T any](app router.Router[T], controller *FilesController) {
	editor := RequireRoles(RoleStaff, RoleAdmin)

	app.Get("/files", controller.List).SetName("files.list")
	app.Get("/files/:name", controller.Read).SetName("files.read")
	app.Post("/files", editor(controller.Create)).SetName("files.create")
	app.Patch("/files/:name", editor(controller.Update)).SetName("files.update")
	app.Delete("/files/:name", editor(controller.Delete)).SetName("files.delete")
}

type FilesController struct {
	Logger  Logger
	Manager *FileManager
}

func NewFilesController(manager *FileManager) *FilesController {
	return &FilesController{Logger: defLogger{}, Manager: manager}
}

func (f *FilesController) WithLogger(logger Logger) *FilesController {
	f.Logger = logger
	return f
}

func (f *FilesController) List(ctx router.Context) error {
	files, err := f.Manager.List()
	if err != nil {
		f.Logger.Error("files list: %s", err)
		return WriteError(ctx, err)
	}
	return ctx.JSON(router.StatusOK, map[string]any{
		"files": files,
		"count": len(files),
	})
}

func (f *FilesController) Read(ctx router.Context) error {
	content, err := f.Manager.Read(ctx.Param("name"))
	if err != nil {
		return WriteError(ctx, err)
	}
	return ctx.JSON(router.StatusOK, map[string]any{
		"name":    ctx.Param("name"),
		"content": string(content),
	})
}

// FilePayload is the create body; updates take the name from the path.
type FilePayload struct {
	Name    string `form:"name" json:"name"`
	Content string `form:"content" json:"content"`
}

// Validate will validate the payload
func (r FilePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}

func (f *FilesController) Create(ctx router.Context) error {
	payload := new(FilePayload)
	if err := ctx.Bind(payload); err != nil {
		f.Logger.Error("files create: parse payload: %s", err)
		return WriteError(ctx, ErrMalformedBody)
	}
	if err := payload.Validate(); err != nil {
		return WriteError(ctx, err)
	}

	if err := f.Manager.Create(payload.Name, []byte(payload.Content)); err != nil {
		return WriteError(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, map[string]any{"created": payload.Name})
}

func (f *FilesController) Update(ctx router.Context) error {
	payload := new(FilePayload)
	if err := ctx.Bind(payload); err != nil {
		f.Logger.Error("files update: parse payload: %s", err)
		return WriteError(ctx, ErrMalformedBody)
	}

	name := ctx.Param("name")
	if err := f.Manager.Update(name, []byte(payload.Content)); err != nil {
		return WriteError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{"updated": name})
}

func (f *FilesController) Delete(ctx router.Context) error {
	name := ctx.Param("name")
	if err := f.Manager.Delete(name); err != nil {
		return WriteError(ctx, err)
	}
	return ctx.JSON(router.StatusOK, map[string]any{"deleted": name})
}
