/*
 * Drop Emulator
 *
 * Copyright Dropmint Labs
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package content carries the collection walkthrough post that this emulator
// accompanies, in both of its published renditions.
package content

import (
	"embed"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed posts/*.md posts/*.html
var PostsFS embed.FS

// PostMarkdown is the markdown rendition of the walkthrough, as ingested by
// the static-site generator.
//
//go:embed posts/launching-an-nft-collection.md
var PostMarkdown string

// PostHTML is the rendered HTML rendition of the walkthrough.
//
//go:embed posts/launching-an-nft-collection.html
var PostHTML string

// A Post is a parsed markdown document: its front matter plus the body text.
type Post struct {
	Title       string    `yaml:"title"`
	Date        time.Time `yaml:"date"`
	Description string    `yaml:"description"`
	Body        string    `yaml:"-"`
}

const frontMatterDelimiter = "---"

// ParsePost splits a markdown document into YAML front matter and body.
func ParsePost(doc string) (*Post, error) {
	trimmed := strings.TrimPrefix(doc, "\uFEFF")

	if !strings.HasPrefix(trimmed, frontMatterDelimiter+"\n") {
		return nil, fmt.Errorf("document has no front matter")
	}

	rest := trimmed[len(frontMatterDelimiter)+1:]

	end := strings.Index(rest, "\n"+frontMatterDelimiter+"\n")
	if end < 0 {
		return nil, fmt.Errorf("front matter is not terminated")
	}

	var post Post
	if err := yaml.Unmarshal([]byte(rest[:end]), &post); err != nil {
		return nil, fmt.Errorf("could not parse front matter: %w", err)
	}

	post.Body = strings.TrimLeft(rest[end+len(frontMatterDelimiter)+2:], "\n")

	return &post, nil
}

// WalkthroughPost parses the embedded markdown rendition.
func WalkthroughPost() (*Post, error) {
	return ParsePost(PostMarkdown)
}
