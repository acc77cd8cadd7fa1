// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

// Package rest implements the fixture inspector REST API.
//
//	GET  /api/v1/fixtures                loaded fixtures with verification status
//	GET  /api/v1/fixtures/:name          fixture source and diagnostics
//	GET  /api/v1/fixtures/:name/summary  summary and statistics
//	POST /api/v1/validate                validate SMV source in the request body
//	POST /api/v1/ltl/nnf                 negation normal form of an LTL formula
//	GET  /metrics                        prometheus metrics
package rest

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/LouvainVerificationLab/smvkit/internal/pkg/logging"
	"github.com/LouvainVerificationLab/smvkit/pkg/analysis"
	"github.com/LouvainVerificationLab/smvkit/pkg/fixture"
	"github.com/LouvainVerificationLab/smvkit/pkg/ltl"
	"github.com/LouvainVerificationLab/smvkit/pkg/report"
	"github.com/LouvainVerificationLab/smvkit/pkg/smv/parser"
)

var log = logging.Log()

// BasePath is the versioned base path of the API.
const BasePath = "/api/v1"

// API serves verification results for a fixed set of fixtures, plus
// stateless validation of posted sources.
type API struct {
	Fixtures []fixture.Fixture
	results  map[string]*fixture.Result
}

// New API instance, registers handlers with a gin Engine.
// The fixtures are verified once, up front.
func New(fixtures []fixture.Fixture, r *gin.Engine) (*API, error) {
	a := &API{Fixtures: fixtures, results: map[string]*fixture.Result{}}
	for _, result := range fixture.VerifyAll(fixtures) {
		a.results[result.Name] = result
	}
	r.Use(a.logger, measure)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	v := r.Group(BasePath)
	v.GET("/fixtures", a.GetFixtures)
	v.GET("/fixtures/:name", a.GetFixture)
	v.GET("/fixtures/:name/summary", a.GetFixtureSummary)
	v.POST("/validate", a.Validate)
	v.POST("/ltl/nnf", a.LTLNNF)
	return a, nil
}

// Close cleans any persistent resources.
func (a *API) Close() {}

// GetFixtures handler.
func (a *API) GetFixtures(c *gin.Context) {
	list := Array[FixtureStatus]{}
	for _, f := range a.Fixtures {
		r := a.results[f.Name]
		list = append(list, FixtureStatus{Fixture: f, Outcome: r.Outcome, Pass: r.Pass()})
	}
	c.JSON(http.StatusOK, list)
}

// GetFixture handler.
func (a *API) GetFixture(c *gin.Context) {
	r := a.result(c)
	if r == nil {
		return
	}
	source, err := os.ReadFile(r.Path)
	if !check(c, http.StatusInternalServerError, err) {
		return
	}
	c.JSON(http.StatusOK, FixtureDetail{
		FixtureStatus: FixtureStatus{Fixture: r.Fixture, Outcome: r.Outcome, Pass: r.Pass()},
		Source:        string(source),
		Error:         r.Error,
		Diagnostics:   Array[analysis.Diagnostic](r.Diagnostics),
	})
}

// GetFixtureSummary handler.
func (a *API) GetFixtureSummary(c *gin.Context) {
	r := a.result(c)
	if r == nil {
		return
	}
	if r.Model() == nil {
		check(c, http.StatusUnprocessableEntity, fmt.Errorf("fixture %q does not parse: %v", r.Name, r.Error))
		return
	}
	c.JSON(http.StatusOK, report.New(r.Model()))
}

// Validate handler. The request body is SMV source text.
func (a *API) Validate(c *gin.Context) {
	source, err := io.ReadAll(c.Request.Body)
	if !check(c, http.StatusBadRequest, err) {
		return
	}
	resp := ValidateResponse{Valid: true}
	model, err := parser.Parse("body.smv", string(source))
	if err != nil {
		resp.Valid = false
		resp.Error = err.Error()
	} else {
		diags := analysis.Analyze(model).Diagnostics
		resp.Diagnostics = Array[analysis.Diagnostic](diags)
		resp.Valid = !diags.HasErrors()
	}
	c.JSON(http.StatusOK, resp)
}

// LTLNNF handler. The request body is an LTL formula in ASCII syntax.
func (a *API) LTLNNF(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if !check(c, http.StatusBadRequest, err) {
		return
	}
	f, err := ltl.Parse(string(body))
	if !check(c, http.StatusBadRequest, err) {
		return
	}
	nnf := f.NNF(false)
	c.JSON(http.StatusOK, NNFResponse{
		Formula: f.String(),
		NNF:     nnf.String(),
		Atoms:   Array[string](ltl.Atoms(nnf)),
	})
}

func (a *API) result(c *gin.Context) *fixture.Result {
	name := c.Params.ByName("name")
	r := a.results[name]
	if r == nil {
		check(c, http.StatusNotFound, fmt.Errorf("fixture not found: %q", name))
	}
	return r
}

func check(c *gin.Context, code int, err error, format ...any) (ok bool) {
	if err != nil && !c.IsAborted() {
		if len(format) > 0 {
			err = fmt.Errorf("%v: %w", fmt.Sprintf(format[0].(string), format[1:]...), err)
		}
		c.AbortWithStatusJSON(code, c.Error(err).JSON())
		log.Error(err, "abort request", "url", c.Request.URL, "code", code)
	}
	return err == nil && !c.IsAborted()
}
