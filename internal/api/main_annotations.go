// Package api implements the JSON API mounted at /api/v1.

// @title           prompt-library API
// @version         1.0
// @description     Renders Bolt system prompts and manages named option presets.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerToken
// @in              header
// @name            Authorization
// @description     Type "Bearer" followed by a space and the configured API token.
package api
