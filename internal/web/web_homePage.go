package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// precomposed UTF-8: ö is C3 B6, Ö is C3 96
const greetingHTML = "<h1 style='text-align: center;'>Welcome to Udacity Cloud DevOps Engineer Nanodegree Capstone Project!</h1><p>Written by Gökhan Özkan</p>"

const htmlContentType = "text/html; charset=utf-8"

var greeting = []byte(greetingHTML)

// Greeting returns the body served on "/"
func Greeting() string {
	return string(greeting)
}

// homePage serves the static greeting. It never touches shared state.
func (s *WebServer) homePage(c *gin.Context) {
	c.Data(http.StatusOK, htmlContentType, greeting)
}
