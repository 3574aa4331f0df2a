// Package web serves the server-rendered admin UI.
package web

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/light-bringer/procat-admin/internal/app/product/catalog"
	"github.com/light-bringer/procat-admin/internal/app/product/contracts"
	"github.com/light-bringer/procat-admin/internal/app/product/controller"
	"github.com/light-bringer/procat-admin/internal/app/product/domain"
	"github.com/light-bringer/procat-admin/internal/app/product/usecases/delete_product"
)

// Handler is a thin coordinator between HTTP requests and the controller.
type Handler struct {
	ctrl    *controller.Controller
	store   *catalog.Store
	session contracts.Session
	views   views
	logger  *slog.Logger
}

// NewHandler creates a new web handler.
func NewHandler(
	ctrl *controller.Controller,
	store *catalog.Store,
	session contracts.Session,
	logger *slog.Logger,
) (*Handler, error) {
	v, err := parseViews()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		ctrl:    ctrl,
		store:   store,
		session: session,
		views:   v,
		logger:  logger.With("component", "web"),
	}, nil
}

// NewApp creates a fiber app serving h.
func NewApp(h *Handler, accessLog bool) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          h.handleError,
	})

	app.Use(recover.New())
	if accessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	h.Register(app)
	return app
}

// Register adds every route to app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/healthz", h.health)
	app.Get("/login", h.login)
	app.Post("/logout", h.logout)
	app.Get("/", h.requireSession, h.index)

	products := app.Group("/products", h.requireSession)
	products.Get("/", h.screen)
	products.Post("/search", h.search)
	products.Post("/refresh", h.refresh)
	products.Get("/page/:n", h.page)
	products.Get("/new", h.startCreate)
	products.Post("/save", h.save)
	products.Post("/validate", h.validate)
	products.Post("/cancel", h.cancel)
	products.Get("/:id", h.startView)
	products.Get("/:id/edit", h.startEdit)
	products.Get("/:id/delete", h.confirmDelete)
	products.Post("/:id/delete", h.delete)
}

func (h *Handler) requireSession(c *fiber.Ctx) error {
	if !h.session.IsAuthenticated() {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

func (h *Handler) index(c *fiber.Ctx) error {
	return c.Redirect("/products", fiber.StatusSeeOther)
}

func (h *Handler) toList(c *fiber.Ctx) error {
	return c.Redirect("/products", fiber.StatusSeeOther)
}

func (h *Handler) health(c *fiber.Ctx) error {
	v := h.store.View()
	return c.JSON(fiber.Map{
		"status":        "ok",
		"authenticated": h.session.IsAuthenticated(),
		"loaded":        v.Loaded,
		"products":      len(h.store.State().FullList),
	})
}

func (h *Handler) login(c *fiber.Ctx) error {
	if h.session.IsAuthenticated() {
		return h.toList(c)
	}
	return h.send(c, fiber.StatusOK, "login", &page{Title: "Signed out"})
}

func (h *Handler) logout(c *fiber.Ctx) error {
	h.session.Logout()
	return c.Redirect("/login", fiber.StatusSeeOther)
}

// screen renders whatever mode the controller is in.
func (h *Handler) screen(c *fiber.Ctx) error {
	return h.renderScreen(c, fiber.StatusOK, "")
}

func (h *Handler) search(c *fiber.Ctx) error {
	h.ctrl.Search(c.FormValue("q"))
	return h.toList(c)
}

func (h *Handler) refresh(c *fiber.Ctx) error {
	if err := h.ctrl.Refresh(c.UserContext()); err != nil {
		h.logger.Warn("manual refresh failed", "error", err)
	}
	return h.toList(c)
}

func (h *Handler) page(c *fiber.Ctx) error {
	if n, err := c.ParamsInt("n"); err == nil {
		h.ctrl.GoToPage(n)
	}
	return h.toList(c)
}

func (h *Handler) startCreate(c *fiber.Ctx) error {
	h.ctrl.StartCreate()
	return h.renderScreen(c, fiber.StatusOK, "")
}

func (h *Handler) startView(c *fiber.Ctx) error {
	id, err := productID(c)
	if err == nil {
		err = h.ctrl.StartView(id)
	}
	if err != nil {
		return h.renderError(c, err)
	}
	return h.renderScreen(c, fiber.StatusOK, "")
}

func (h *Handler) startEdit(c *fiber.Ctx) error {
	id, err := productID(c)
	if err == nil {
		err = h.ctrl.StartEdit(id)
	}
	if err != nil {
		return h.renderError(c, err)
	}
	return h.renderScreen(c, fiber.StatusOK, "")
}

func (h *Handler) save(c *fiber.Ctx) error {
	if err := h.ctrl.Submit(c.UserContext(), draftFromForm(c)); err != nil {
		return h.renderError(c, err)
	}
	return h.toList(c)
}

// validate re-checks the form without submitting. Fields that were touched
// before, or that now hold text, show their errors.
func (h *Handler) validate(c *fiber.Ctx) error {
	d := draftFromForm(c)

	touched := make([]domain.Field, 0, len(domain.Fields))
	for _, raw := range c.Request().PostArgs().PeekMulti("touched") {
		touched = append(touched, domain.Field(raw))
	}
	for _, f := range domain.Fields {
		if strings.TrimSpace(c.FormValue(string(f))) != "" {
			touched = append(touched, f)
		}
	}

	if err := h.ctrl.UpdateDraft(d, touched...); err != nil {
		return h.renderError(c, err)
	}
	return h.renderScreen(c, fiber.StatusOK, "")
}

func (h *Handler) cancel(c *fiber.Ctx) error {
	h.ctrl.Cancel()
	return h.toList(c)
}

func (h *Handler) confirmDelete(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return h.renderError(c, err)
	}
	p, err := h.store.Find(id)
	if err != nil {
		return h.renderError(c, err)
	}

	data := h.basePage("Delete product", "")
	data.Confirm = &confirmView{
		ID:     p.ID,
		Prompt: delete_product.Prompt(p),
		Busy:   h.ctrl.Snapshot().Busy,
	}
	return h.send(c, fiber.StatusOK, "confirm", data)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return h.renderError(c, err)
	}

	answer := contracts.Answer(c.FormValue("answer") == "yes")
	if err := h.ctrl.RequestDelete(c.UserContext(), id, answer); err != nil {
		return h.renderError(c, err)
	}
	return h.toList(c)
}

func productID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrProductNotFound
	}
	return id, nil
}

func draftFromForm(c *fiber.Ctx) domain.Draft {
	return domain.Draft{
		Name:        c.FormValue(string(domain.FieldName)),
		Price:       c.FormValue(string(domain.FieldPrice)),
		Quantity:    c.FormValue(string(domain.FieldQuantity)),
		Description: c.FormValue(string(domain.FieldDescription)),
		Category:    c.FormValue(string(domain.FieldCategory)),
	}
}

func (h *Handler) basePage(title, notice string) *page {
	return &page{
		Title:    title,
		SignedIn: true,
		Username: h.session.Username(),
		Notice:   notice,
	}
}

// renderScreen renders the page for the controller's mode. The controller's
// notice is shown once and then dismissed.
func (h *Handler) renderScreen(c *fiber.Ctx, status int, notice string) error {
	s := h.ctrl.Snapshot()
	if notice == "" {
		notice = s.Notice
	}
	h.ctrl.DismissNotice()

	data := h.basePage("Products", notice)
	view := "list"

	switch s.Mode {
	case domain.ModeCreate, domain.ModeEdit:
		if s.Form != nil {
			view = "form"
			data.Title = "Edit product"
			if s.Mode == domain.ModeCreate {
				data.Title = "Add product"
			}
			data.Form = newFormView(s, h.store.Categories(c.UserContext()))
		}
	case domain.ModeDetail:
		if s.Current != nil {
			view = "detail"
			data.Title = s.Current.Name
			data.Detail = newDetailView(*s.Current)
		}
	case domain.ModeList:
	}

	if view == "list" {
		data.List = newListView(s.View)
	}
	return h.send(c, status, view, data)
}

func (h *Handler) renderError(c *fiber.Ctx, err error) error {
	status, notice := mapErrorToStatus(err)
	if status >= fiber.StatusInternalServerError {
		h.logger.Error("request failed", "path", c.Path(), "error", err)
	} else {
		h.logger.Debug("request rejected", "path", c.Path(), "status", status, "error", err)
	}
	return h.renderScreen(c, status, notice)
}

func (h *Handler) send(c *fiber.Ctx, status int, view string, data *page) error {
	body, err := h.views.render(view, data)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(body)
}

func (h *Handler) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	} else {
		h.logger.Error("unhandled error", "path", c.Path(), "error", err)
	}

	return c.Status(code).SendString(message)
}
