// Package health grades a built topology: whether spaces carry quantities,
// sit in a storey, and touch their neighbours.
package health

import (
	"time"
)

// NewChecker creates an empty checker
func NewChecker() *Checker {
	return &Checker{checks: make(map[string]CheckFunc)}
}

// RegisterCheck registers a check. Registering a name again replaces it.
func (c *Checker) RegisterCheck(name string, check CheckFunc) {
	if _, ok := c.checks[name]; !ok {
		c.order = append(c.order, name)
	}
	c.checks[name] = check
}

// Names returns the registered check names in registration order.
func (c *Checker) Names() []string {
	return c.order
}

// Run performs every check. The worst status becomes the overall status.
func (c *Checker) Run() Response {
	response := Response{
		Status:    StatusHealthy,
		Timestamp: time.Now(),
		Checks:    make(map[string]Check, len(c.checks)),
	}

	for _, name := range c.order {
		start := time.Now()
		check := c.checks[name]()
		check.Duration = time.Since(start)
		check.LastChecked = start
		if check.Name == "" {
			check.Name = name
		}

		response.Checks[name] = check
		if check.Status.severity() > response.Status.severity() {
			response.Status = check.Status
		}
	}

	return response
}

// Problems returns the checks that are not healthy, in registration order.
func (c *Checker) Problems(r Response) []Check {
	var out []Check
	for _, name := range c.order {
		if ch, ok := r.Checks[name]; ok && ch.Status != StatusHealthy {
			out = append(out, ch)
		}
	}
	return out
}
