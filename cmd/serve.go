package cmd

import (
	"log"
	"net/http"

	"github.com/jsphweid/scoretime/constants"
	"github.com/jsphweid/scoretime/server"
	"github.com/spf13/cobra"
)

var servePort string
var serveWatch bool

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", constants.GetPort(), "port to listen on")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", true, "rebuild when the score file changes")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve <score>",
	Short: "serves a timeline",
	Long:  `Builds the timeline of a score file and serves it over HTTP.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		serve(args[0])
	},
}

func serve(path string) {
	srv, err := server.New(path)
	if err != nil {
		log.Fatalf("Could not load %s: %v", path, err)
	}
	if serveWatch {
		stop := make(chan struct{})
		defer close(stop)
		go srv.Watch(stop)
	}

	log.Printf("Serving %s on :%s", path, servePort)
	log.Fatal(http.ListenAndServe(":"+servePort, srv.Router()))
}
