package commands

import "fmt"

const usage = `assetpipe is a media asset ingestion and optimization service.

Usage:
  assetpipe <command> [arguments]

Commands:
  run <config>     start the http api
  watch <config>   tail the change feed and log every event
  browse <config>  browse, select and delete catalog assets in the terminal
  help             print this help
  version          print the version`

func HandleHelp(_ []string) {
	fmt.Println(usage) //nolint
}
