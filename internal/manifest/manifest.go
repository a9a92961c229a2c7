// Package manifest patches native app manifests so the partner app can be probed and launched.
//
// Both patches are idempotent: running them repeatedly yields the same document.
package manifest

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"github.com/beevik/etree"
	"howett.net/plist"
)

const (
	DefaultScheme = "truecoach"

	queriesSchemesKey = "LSApplicationQueriesSchemes"

	actionView     = "android.intent.action.VIEW"
	actionMain     = "android.intent.action.MAIN"
	categoryLaunch = "android.intent.category.LAUNCHER"
)

// DefaultAndroidPackages are the partner package ids declared for visibility.
var DefaultAndroidPackages = []string{
	"co.truecoach.client",
	"co.truecoach.coach",
	"co.truecoach.client.beta",
	"com.truecoach.client",
	"com.truecoach.beta",
}

// Options selects the scheme and package candidates. Zero values fall back to the defaults.
type Options struct {
	Scheme          string
	AndroidPackages []string
}

func (o Options) withDefaults() Options {
	if o.Scheme == "" {
		o.Scheme = DefaultScheme
	}
	if len(o.AndroidPackages) == 0 {
		o.AndroidPackages = DefaultAndroidPackages
	}
	return o
}

// PatchInfoPlist adds the scheme to LSApplicationQueriesSchemes, keeping existing order.
// The input format (XML or binary) is preserved.
func PatchInfoPlist(data []byte, opts Options) ([]byte, bool, error) {
	opts = opts.withDefaults()

	var doc map[string]any
	format, err := plist.Unmarshal(data, &doc)
	if err != nil {
		return nil, false, fmt.Errorf("failed to parse Info.plist: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	var schemes []any
	if existing, ok := doc[queriesSchemesKey].([]any); ok {
		schemes = existing
	}

	changed := false
	if !slices.ContainsFunc(schemes, func(v any) bool { s, _ := v.(string); return s == opts.Scheme }) {
		schemes = append(schemes, opts.Scheme)
		changed = true
	}
	if !changed {
		return data, false, nil
	}
	doc[queriesSchemesKey] = schemes

	var out []byte
	if format == plist.XMLFormat {
		out, err = plist.MarshalIndent(doc, format, "\t")
	} else {
		out, err = plist.Marshal(doc, format)
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to write Info.plist: %w", err)
	}
	return out, true, nil
}

// PatchAndroidManifest ensures <queries> declares every package, a VIEW intent for the
// scheme and a MAIN/LAUNCHER intent.
func PatchAndroidManifest(data []byte, opts Options) ([]byte, bool, error) {
	opts = opts.withDefaults()

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, false, fmt.Errorf("failed to parse AndroidManifest.xml: %w", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "manifest" {
		return nil, false, fmt.Errorf("AndroidManifest.xml has no <manifest> root")
	}

	changed := false
	queries := root.SelectElement("queries")
	if queries == nil {
		queries = root.CreateElement("queries")
		changed = true
	}

	for _, pkg := range opts.AndroidPackages {
		if hasPackage(queries, pkg) {
			continue
		}
		queries.CreateElement("package").CreateAttr("android:name", pkg)
		changed = true
	}

	if !hasIntent(queries, actionView, func(i *etree.Element) bool {
		return childAttr(i, "data", "android:scheme") == opts.Scheme
	}) {
		intent := queries.CreateElement("intent")
		intent.CreateElement("action").CreateAttr("android:name", actionView)
		intent.CreateElement("data").CreateAttr("android:scheme", opts.Scheme)
		changed = true
	}

	if !hasIntent(queries, actionMain, func(*etree.Element) bool { return true }) {
		intent := queries.CreateElement("intent")
		intent.CreateElement("action").CreateAttr("android:name", actionMain)
		intent.CreateElement("category").CreateAttr("android:name", categoryLaunch)
		changed = true
	}

	if !changed {
		return data, false, nil
	}

	doc.Indent(4)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, false, fmt.Errorf("failed to write AndroidManifest.xml: %w", err)
	}
	return buf.Bytes(), true, nil
}

func hasPackage(queries *etree.Element, pkg string) bool {
	for _, p := range queries.SelectElements("package") {
		if p.SelectAttrValue("android:name", "") == pkg {
			return true
		}
	}
	return false
}

func hasIntent(queries *etree.Element, action string, match func(*etree.Element) bool) bool {
	for _, i := range queries.SelectElements("intent") {
		if childAttr(i, "action", "android:name") == action && match(i) {
			return true
		}
	}
	return false
}

func childAttr(el *etree.Element, tag, attr string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return child.SelectAttrValue(attr, "")
}

// PatchFile applies patch to the file at path in place. It reports whether the file changed.
func PatchFile(path string, opts Options, patch func([]byte, Options) ([]byte, bool, error)) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	out, changed, err := patch(data, opts)
	if err != nil || !changed {
		return false, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return true, os.WriteFile(path, out, info.Mode().Perm())
}
