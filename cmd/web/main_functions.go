package main

import (
	"log"
	"os"
	"strings"
	"time"
)

const (
	updateFileFlag     = ".update"
	updateFileInterval = 60 * time.Second
)

// monitorUpdateFile watches for an update flag file. When it shows up it is
// renamed to <path>.todo and a shutdown is signalled, so a supervisor can
// restart the process with a new build.
func monitorUpdateFile(updateFilePath string, interval time.Duration, shutdownChan chan<- bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("[WEB]: Update file monitor started, checking for '%s' every %v", updateFilePath, interval)

	for range ticker.C {
		if checkUpdateFile(updateFilePath, shutdownChan) {
			return
		}
	}
}

// checkUpdateFile reports whether a shutdown was triggered by the flag file
func checkUpdateFile(updateFilePath string, shutdownChan chan<- bool) bool {
	if _, err := os.Stat(updateFilePath); err != nil {
		return false
	}
	log.Printf("[WEB]: Update file '%s' detected, triggering graceful shutdown", updateFilePath)

	if err := os.Rename(updateFilePath, updateFilePath+".todo"); err != nil {
		log.Printf("[WEB]: Warning: Failed to rename update file '%s': %v", updateFilePath, err)
		return false
	}

	select {
	case shutdownChan <- true:
		log.Printf("[WEB]: Shutdown signal sent via update file monitor")
	default:
		log.Printf("[WEB]: Shutdown channel already signaled")
	}
	return true
}

// parseHostList splits the -allowedhosts flag, dropping blanks
func parseHostList(list string) []string {
	var hosts []string
	for _, h := range strings.Split(list, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}
