package web

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Department struct {
	Slug    string
	Name    string
	Summary string
}

type Milestone struct {
	Year int
	Text string
}

var Departments = []Department{
	{Slug: "computer", Name: "Computer Technology", Summary: "Programming, networking and database systems."},
	{Slug: "civil", Name: "Civil Technology", Summary: "Structures, surveying and construction materials."},
	{Slug: "electrical", Name: "Electrical Technology", Summary: "Power systems, machines and installation."},
	{Slug: "electronics", Name: "Electronics Technology", Summary: "Circuits, microcontrollers and communication."},
	{Slug: "mechanical", Name: "Mechanical Technology", Summary: "Manufacturing, thermodynamics and machine design."},
	{Slug: "power", Name: "Power Technology", Summary: "Generation plants, turbines and maintenance."},
}

var Milestones = []Milestone{
	{Year: 1955, Text: "The institute opens with three departments."},
	{Year: 1980, Text: "Computer and electronics programmes are added."},
	{Year: 2001, Text: "Diploma courses move to the four year curriculum."},
	{Year: 2023, Text: "The Smart Campus portal goes online."},
}

type page struct {
	Title       string
	Year        int
	Departments []Department
	Milestones  []Milestone
	Error       string
}

// loginErrors maps the login page's error codes to messages.
var loginErrors = map[string]string{
	"invalid":     "Enter a valid email and password.",
	"credentials": "Invalid email or password.",
	"failed":      "Sign in failed, please try again.",
}

// Handler serves the server-rendered pages.
type Handler struct {
	now func() time.Time
}

func NewHandler() *Handler {
	return &Handler{now: time.Now}
}

func (h *Handler) newPage(title string) page {
	return page{
		Title:       title,
		Year:        h.now().Year(),
		Departments: Departments,
		Milestones:  Milestones,
	}
}

func (h *Handler) render(c echo.Context, name, title string) error {
	return c.Render(http.StatusOK, name, h.newPage(title))
}

func (h *Handler) Home(c echo.Context) error        { return h.render(c, "home", "Home") }
func (h *Handler) About(c echo.Context) error       { return h.render(c, "about", "About") }
func (h *Handler) Departments(c echo.Context) error { return h.render(c, "departments", "Departments") }
func (h *Handler) History(c echo.Context) error     { return h.render(c, "history", "History") }
func (h *Handler) Dashboard(c echo.Context) error   { return h.render(c, "dashboard", "Dashboard") }

// Login shows the sign-in form, with a message when a previous attempt failed.
func (h *Handler) Login(c echo.Context) error {
	p := h.newPage("Login")
	p.Error = loginErrors[c.QueryParam("error")]
	return c.Render(http.StatusOK, "login", p)
}

// Register mounts the pages behind mw.
func (h *Handler) Register(e *echo.Echo, mw ...echo.MiddlewareFunc) {
	e.GET("/", h.Home, mw...)
	e.GET("/about", h.About, mw...)
	e.GET("/departments", h.Departments, mw...)
	e.GET("/history", h.History, mw...)
	e.GET("/login", h.Login, mw...)
	e.GET("/dashboard", h.Dashboard, mw...)
	e.GET("/dashboard/*", h.Dashboard, mw...)
}
