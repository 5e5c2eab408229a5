package config

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// applyFallbacks applies environment variable fallbacks and in-code defaults
func (c *Config) applyFallbacks() {
	c.applyEmbeddingAPIKeyFallbacks()
	c.applyServerAPIKeyFallbacks()
	c.applyObservabilityDefaults()
	c.Vocabulary.fillDefaults()
}

// applyEmbeddingAPIKeyFallbacks resolves the embedding API key from legacy
// environment variables when the config leaves it unset
func (c *Config) applyEmbeddingAPIKeyFallbacks() {
	if c.Embedding.APIKey == "" {
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			c.Embedding.APIKey = key
		}
	}
}

// applyServerAPIKeyFallbacks applies API key fallbacks from environment variables
func (c *Config) applyServerAPIKeyFallbacks() {
	if len(c.Server.APIKeys) == 0 {
		if apiKeysEnv := os.Getenv("RESUMETRIC_SERVER_APIKEYS"); apiKeysEnv != "" {
			c.Server.APIKeys = strings.Split(apiKeysEnv, ",")
			// Trim whitespace from each key
			for i, key := range c.Server.APIKeys {
				c.Server.APIKeys[i] = strings.TrimSpace(key)
			}
		}
	}
}

// applyObservabilityDefaults applies default observability configuration values
func (c *Config) applyObservabilityDefaults() {
	if c.Observability.ServiceInstance == "" {
		c.Observability.ServiceInstance = generateServiceInstanceID(c.Observability.ServiceName)
	}
}

// generateServiceInstanceID generates a unique service instance ID
func generateServiceInstanceID(serviceName string) string {
	// Try to get hostname, fallback to default
	if hostname, err := os.Hostname(); err == nil {
		return fmt.Sprintf("%s-%s", serviceName, hostname)
	}
	return fmt.Sprintf("%s-1", serviceName)
}

// logConfigurationSources logs a summary of configuration sources being used
func (c *Config) logConfigurationSources(configFileUsed string) {
	if configFileUsed != "" {
		log.Printf("[CONFIG] Config file: %s", configFileUsed)
	} else {
		log.Println("[CONFIG] Config file: None (using defaults)")
	}

	log.Printf("[CONFIG] Embedding Provider: %s", c.Embedding.Provider)
	log.Printf("[CONFIG] Embedding Model: %s", c.Embedding.Model)
	if c.Embedding.APIKey != "" {
		log.Println("[CONFIG] Embedding API Key: ***CONFIGURED***")
	} else {
		log.Println("[CONFIG] Embedding API Key: ***NOT SET***")
	}
	log.Printf("[CONFIG] Model Artifact: %s (autoReload=%t)", c.Model.Path, c.Model.AutoReload)
	log.Printf("[CONFIG] Server Host: %s", c.Server.Host)
	log.Printf("[CONFIG] Server Port: %s", c.Server.Port)
	log.Printf("[CONFIG] Log Level: %s", c.App.LogLevel)
	log.Printf("[CONFIG] Observability Enabled: %t", c.Observability.Enabled)
}
