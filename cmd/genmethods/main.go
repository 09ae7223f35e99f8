// Copyright 2024 - 2026, the vkapi contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command genmethods refreshes the method list consumed by core/methods.
//
// It fetches the dev portal's method listing, extracts the embedded JSON
// method index (falling back to crawling the per-namespace pages), and
// writes the result as a flat comma-separated list. Run it by hand when VK
// ships new API methods; the output is committed, not generated at runtime.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"codeberg.org/vkapi/vkapi/config"
	"codeberg.org/vkapi/vkapi/core/audit"
	"codeberg.org/vkapi/vkapi/core/requests"
)

const (
	outputFilePerm = 0o644

	// namespaceFetchLimit caps concurrent fetches of per-namespace pages so
	// the crawl stays polite.
	namespaceFetchLimit = 4
)

// identifierPattern matches a fully qualified method name. The bare
// "execute" method is the one identifier without a namespace.
var identifierPattern = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*(\.[a-zA-Z][a-zA-Z0-9]*)?$`)

func main() {
	outPath := flag.String("o", "core/methods/data/methods.txt", "output file")
	flag.Parse()

	audit.SetDefaultLogger()

	cfg, err := config.Load(os.Getenv("VKAPI_CONFIG"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	audit.SetLogLevel(cfg.Log.Level)

	ctx := context.Background()

	names, err := collectMethodNames(ctx, newFetcher(cfg))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to collect method names")
	}

	if err := writeMethodList(*outPath, names); err != nil {
		log.Fatal().Err(err).Msg("Failed to write method list")
	}

	log.Info().
		Int("methods", len(names)).
		Str("path", *outPath).
		Msg("Method list refreshed")
}

// fetcher bundles the listing location with the request settings every
// fetch shares.
type fetcher struct {
	listingURL string
	userAgent  string
	client     *http.Client
}

func newFetcher(cfg *config.Config) *fetcher {
	return &fetcher{
		listingURL: cfg.Docs.ListingURL,
		userAgent:  cfg.Request.UserAgent,
		client:     requests.NewHTTPClient(cfg.Request.Timeout),
	}
}

// collectMethodNames fetches the listing page and extracts every known
// method identifier, sorted and deduplicated.
func collectMethodNames(ctx context.Context, f *fetcher) ([]string, error) {
	doc, err := f.fetchDocument(ctx, f.listingURL)
	if err != nil {
		return nil, err
	}

	// The portal embeds its full method index as JSON inside a script tag.
	names := extractEmbeddedMethods(doc)
	if len(names) == 0 {
		log.Warn().Msg("No embedded method index found, crawling namespace pages")

		names, err = crawlNamespacePages(ctx, f, doc)
		if err != nil {
			return nil, err
		}
	}

	names = dedupeAndSort(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("listing at %s yielded no method names", f.listingURL)
	}

	return names, nil
}

// fetchDocument GETs url and parses it as HTML.
func (f *fetcher) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := requests.Get(ctx, requests.Options{
		Destination: audit.ToDocs,
		URL:         url,
		UserAgent:   f.userAgent,
		Client:      f.client,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", url, err)
	}

	return doc, nil
}

// extractEmbeddedMethods pulls method identifiers out of the JSON blob the
// portal ships inside its script tags. Returns nil when no usable blob is
// present.
func extractEmbeddedMethods(doc *goquery.Document) []string {
	var names []string

	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if text == "" || !gjson.Valid(text) {
			return true
		}

		// Any value keyed "name" shaped like namespace.method counts. The
		// blob's surrounding structure has changed before; the leaf shape
		// has not.
		names = append(names, digMethodNames(gjson.Parse(text))...)

		return len(names) == 0
	})

	if len(names) > 0 {
		// The bare execute method never appears in the embedded index.
		names = append(names, "execute")
	}

	return names
}

// digMethodNames walks an arbitrary JSON document and collects every string
// value keyed "name" that looks like a qualified method identifier.
func digMethodNames(doc gjson.Result) []string {
	var names []string

	var walk func(value gjson.Result)
	walk = func(value gjson.Result) {
		if !value.IsObject() && !value.IsArray() {
			return
		}

		value.ForEach(func(key, child gjson.Result) bool {
			if key.String() == "name" && child.Type == gjson.String {
				if name := child.String(); identifierPattern.MatchString(name) && strings.Contains(name, ".") {
					names = append(names, name)
				}
			}

			walk(child)

			return true
		})
	}

	walk(doc)

	return names
}

// crawlNamespacePages is the fallback extraction path: follow every
// namespace link on the listing page and read method names off each page's
// anchors.
func crawlNamespacePages(ctx context.Context, f *fetcher, index *goquery.Document) ([]string, error) {
	namespaceURLs := extractNamespaceLinks(index, f.listingURL)
	if len(namespaceURLs) == 0 {
		return nil, errors.New("listing page has no namespace links")
	}

	results := make([][]string, len(namespaceURLs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(namespaceFetchLimit)

	for i, nsURL := range namespaceURLs {
		group.Go(func() error {
			doc, err := f.fetchDocument(groupCtx, nsURL)
			if err != nil {
				return err
			}

			results[i] = extractMethodLinks(doc)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	names := []string{"execute"}
	for _, pageNames := range results {
		names = append(names, pageNames...)
	}

	return names, nil
}

// extractNamespaceLinks collects absolute URLs of per-namespace pages from
// the listing index. Namespace links have no dot in their last path
// segment; method links do.
func extractNamespaceLinks(doc *goquery.Document, listingURL string) []string {
	seen := make(map[string]struct{})

	var urls []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := sel.AttrOr("href", "")

		segment, ok := methodPathSegment(href)
		if !ok || strings.Contains(segment, ".") || segment == "execute" {
			return
		}

		target := strings.TrimRight(listingURL, "/") + "/" + segment
		if _, dup := seen[target]; dup {
			return
		}

		seen[target] = struct{}{}

		urls = append(urls, target)
	})

	return urls
}

// extractMethodLinks collects dot-qualified method names from a namespace
// page's anchors.
func extractMethodLinks(doc *goquery.Document) []string {
	var names []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := sel.AttrOr("href", "")

		segment, ok := methodPathSegment(href)
		if !ok || !strings.Contains(segment, ".") {
			return
		}

		if identifierPattern.MatchString(segment) {
			names = append(names, segment)
		}
	})

	return names
}

// methodPathSegment returns the path segment following "/method/" in href.
func methodPathSegment(href string) (string, bool) {
	href = strings.TrimSuffix(href, "/")

	_, after, found := strings.Cut(href, "/method/")
	if !found || after == "" || strings.ContainsAny(after, "/?#") {
		return "", false
	}

	return after, true
}

// dedupeAndSort returns names sorted and with duplicates removed.
func dedupeAndSort(names []string) []string {
	seen := make(map[string]struct{}, len(names))

	out := names[:0]

	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}

		seen[name] = struct{}{}

		out = append(out, name)
	}

	sort.Strings(out)

	return out
}

// writeMethodList writes names as a single comma-separated line.
func writeMethodList(path string, names []string) error {
	data := strings.Join(names, ",") + "\n"

	if err := os.WriteFile(path, []byte(data), outputFilePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
