package manifest

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"
	tu "github.com/desertthunder/better/internal/testing"
	"howett.net/plist"
)

const infoPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleName</key>
	<string>Better</string>
	<key>LSApplicationQueriesSchemes</key>
	<array>
		<string>whatsapp</string>
	</array>
</dict>
</plist>`

const androidManifest = `<?xml version="1.0" encoding="utf-8"?>
<manifest xmlns:android="http://schemas.android.com/apk/res/android">
    <queries>
        <package android:name="co.truecoach.client"/>
    </queries>
    <application android:name=".MainApplication"/>
</manifest>`

func schemesOf(t *testing.T, data []byte) []string {
	t.Helper()
	var doc struct {
		Schemes []string `plist:"LSApplicationQueriesSchemes"`
	}
	if _, err := plist.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output does not parse: %v", err)
	}
	return doc.Schemes
}

func TestPatchInfoPlist(t *testing.T) {
	t.Run("Appends scheme", func(t *testing.T) {
		out, changed, err := PatchInfoPlist([]byte(infoPlist), Options{})
		if err != nil || !changed {
			t.Fatalf("expected change, got %v %v", changed, err)
		}
		got := schemesOf(t, out)
		if len(got) != 2 || got[0] != "whatsapp" || got[1] != "truecoach" {
			t.Errorf("unexpected schemes %v", got)
		}
		if !strings.Contains(string(out), "CFBundleName") {
			t.Error("existing keys dropped")
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		once, _, _ := PatchInfoPlist([]byte(infoPlist), Options{})
		twice, changed, err := PatchInfoPlist(once, Options{})
		if err != nil || changed {
			t.Errorf("second patch should be a no-op, got %v %v", changed, err)
		}
		if string(once) != string(twice) {
			t.Error("output changed on second run")
		}
	})

	t.Run("Creates list", func(t *testing.T) {
		src := `<?xml version="1.0" encoding="UTF-8"?><plist version="1.0"><dict></dict></plist>`
		out, _, err := PatchInfoPlist([]byte(src), Options{Scheme: "custom"})
		if err != nil {
			t.Fatalf("patch failed: %v", err)
		}
		if got := schemesOf(t, out); len(got) != 1 || got[0] != "custom" {
			t.Errorf("unexpected schemes %v", got)
		}
	})

	t.Run("Binary format preserved", func(t *testing.T) {
		bin, err := plist.Marshal(map[string]any{"CFBundleName": "Better"}, plist.BinaryFormat)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		out, _, err := PatchInfoPlist(bin, Options{})
		if err != nil {
			t.Fatalf("patch failed: %v", err)
		}
		if !strings.HasPrefix(string(out), "bplist") {
			t.Error("expected binary output")
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		if _, _, err := PatchInfoPlist([]byte("<plist><dict><key>x"), Options{}); err == nil {
			t.Error("expected parse error")
		}
	})
}

func countIntents(t *testing.T, data []byte, action string) int {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		t.Fatalf("output does not parse: %v", err)
	}
	n := 0
	for _, i := range doc.FindElements("//queries/intent") {
		if a := i.SelectElement("action"); a != nil && a.SelectAttrValue("android:name", "") == action {
			n++
		}
	}
	return n
}

func TestPatchAndroidManifest(t *testing.T) {
	t.Run("Adds entries", func(t *testing.T) {
		out, changed, err := PatchAndroidManifest([]byte(androidManifest), Options{})
		if err != nil || !changed {
			t.Fatalf("expected change, got %v %v", changed, err)
		}

		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(out); err != nil {
			t.Fatalf("output does not parse: %v", err)
		}
		pkgs := doc.FindElements("//queries/package")
		if len(pkgs) != len(DefaultAndroidPackages) {
			t.Errorf("expected %d packages, got %d", len(DefaultAndroidPackages), len(pkgs))
		}
		if countIntents(t, out, actionView) != 1 || countIntents(t, out, actionMain) != 1 {
			t.Error("expected one VIEW and one MAIN intent")
		}
		data := doc.FindElement("//queries/intent/data")
		if data == nil || data.SelectAttrValue("android:scheme", "") != "truecoach" {
			t.Error("VIEW intent missing scheme")
		}
		if doc.FindElement("//application") == nil {
			t.Error("application element dropped")
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		once, _, _ := PatchAndroidManifest([]byte(androidManifest), Options{})
		twice, changed, err := PatchAndroidManifest(once, Options{})
		if err != nil || changed {
			t.Errorf("second patch should be a no-op, got %v %v", changed, err)
		}
		if string(once) != string(twice) {
			t.Error("output changed on second run")
		}
	})

	t.Run("Creates queries", func(t *testing.T) {
		src := `<manifest xmlns:android="http://schemas.android.com/apk/res/android"><application/></manifest>`
		out, _, err := PatchAndroidManifest([]byte(src), Options{Scheme: "x", AndroidPackages: []string{"a.b"}})
		if err != nil {
			t.Fatalf("patch failed: %v", err)
		}
		if !strings.Contains(string(out), `<package android:name="a.b"/>`) {
			t.Errorf("package entry missing:\n%s", out)
		}
	})

	t.Run("Wrong root", func(t *testing.T) {
		if _, _, err := PatchAndroidManifest([]byte(`<resources/>`), Options{}); err == nil {
			t.Error("expected root error")
		}
	})
}

func TestPatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "AndroidManifest.xml")
	tu.MustWriteFile(t, path, androidManifest)

	changed, err := PatchFile(path, Options{}, PatchAndroidManifest)
	if err != nil || !changed {
		t.Fatalf("expected change, got %v %v", changed, err)
	}
	if !strings.Contains(tu.MustReadFile(t, path), actionMain) {
		t.Error("file not rewritten")
	}

	changed, err = PatchFile(path, Options{}, PatchAndroidManifest)
	if err != nil || changed {
		t.Errorf("second run should not change the file, got %v %v", changed, err)
	}
}
