// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/LouvainVerificationLab/smvkit/internal/pkg/logging"
	"github.com/LouvainVerificationLab/smvkit/internal/pkg/must"
	"github.com/LouvainVerificationLab/smvkit/pkg/build"
	"github.com/LouvainVerificationLab/smvkit/pkg/fixture"
	"github.com/LouvainVerificationLab/smvkit/pkg/rest"
)

var webCmd = &cobra.Command{
	Use:   "web [FILE_OR_DIR...]",
	Short: "Start the fixture inspector REST server.",
	Run: func(cmd *cobra.Command, args []string) {
		var fixtures []fixture.Fixture
		if *manifestFlag != "" {
			manifests := must.Must1(fixture.LoadManifest(*manifestFlag))
			fixtures = must.Must1(manifests.Fixtures())
		} else if len(args) > 0 {
			fixtures = must.Must1(fixture.Load(args...))
		}

		gin.DefaultWriter = logging.LogWriter()
		gin.SetMode(gin.ReleaseMode)
		gin.DisableConsoleColor()
		router := gin.New()
		router.Use(gin.Recovery())
		r := must.Must1(rest.New(fixtures, router))
		defer r.Close()
		rest.WebProfile(router) // Enable profiling

		log.Info("listening for http", "addr", *httpFlag, "fixtures", len(fixtures), "version", build.Version)
		s := http.Server{Addr: *httpFlag, Handler: router}
		must.Must(s.ListenAndServe())
	},
}

var (
	httpFlag     *string
	manifestFlag *string
)

func init() {
	httpFlag = webCmd.Flags().String("http", ":8080", "host:port address for the http listener")
	manifestFlag = webCmd.Flags().String("manifest", "", "load fixtures from a manifest instead of file arguments")
	rootCmd.AddCommand(webCmd)
}
