// Package schema fetches component schemas from a headless CMS and expands
// them into GraphQL field selections.
package schema

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/samber/oops"
)

// Attribute is one field descriptor from a component's attribute schema.
// Attributes carry the order in which they appear in the JSON document; that
// order determines the order of generated selections.
type Attribute struct {
	Name      string
	Type      string
	Component string // target component identifier when Type == "component"
}

// Client fetches component schemas from the content-type-builder API.
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a client against the CMS base URL, e.g.
// "http://localhost:1337".
func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// ComponentSchema fetches the attribute schema for one component, preserving
// the document order of the attributes.
func (c *Client) ComponentSchema(ctx context.Context, id string) ([]Attribute, error) {
	url := fmt.Sprintf("%s/api/content-type-builder/components/%s", c.base, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, oops.Code("FETCH_FAILED").With("component", id).Wrap(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, oops.Code("FETCH_FAILED").With("component", id).Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, oops.Code("FETCH_FAILED").
			With("component", id).
			With("status", resp.StatusCode).
			Errorf("content-type-builder returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, oops.Code("FETCH_FAILED").With("component", id).Wrap(err)
	}

	return parseAttributes(id, body)
}

// parseAttributes walks data.schema.attributes in document order.
func parseAttributes(id string, body []byte) ([]Attribute, error) {
	var attrs []Attribute
	err := jsonparser.ObjectEach(body, func(key, value []byte, _ jsonparser.ValueType, _ int) error {
		typ, err := jsonparser.GetString(value, "type")
		if err != nil {
			return fmt.Errorf("attribute %q has no type: %w", string(key), err)
		}
		a := Attribute{Name: string(key), Type: typ}
		if typ == "component" {
			target, err := jsonparser.GetString(value, "component")
			if err != nil {
				return fmt.Errorf("component attribute %q names no target: %w", string(key), err)
			}
			a.Component = target
		}
		attrs = append(attrs, a)
		return nil
	}, "data", "schema", "attributes")
	if err != nil {
		return nil, oops.Code("SCHEMA_MALFORMED").With("component", id).Wrap(err)
	}
	return attrs, nil
}
