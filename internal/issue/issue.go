// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	xslices "golang.org/x/exp/slices"
)

// Id identifies a catalog entry.
type Id int

const (
	MissingDependencyId Id = iota + 1
	MissingWindowsFontsId
	ManifestGroupsNotFoundId
	MissingGroupFileId
	ArchivesNotFoundId
	ArchiveDownloadFailedId
	ExtractionFailedId
	FamilyNameNotFoundId
	UnsafeRemovalId
	ConfigLoadFailedId
)

type (
	// MarkdownMsg is Markdown text rendered by glamour.
	MarkdownMsg string

	// HttpLink is a URL shown under "See also".
	HttpLink string

	// Issue is a Markdown guide for one class of fatal condition.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return xslices.Clone(i.docLinks)
}

// Render renders the guide for the terminal. stylePath is a glamour style
// name ("dark", "light", "notty") or a path to a JSON style file.
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.docLinks {
			md += "- <" + string(link) + ">\n"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	missingDependencyIssue = &Issue{
		id: MissingDependencyId,
		mdMsg: `
# Missing external tool!

Building the font collections needs a few command-line tools on your PATH.

## Required tools
- **7z** extracts the Apple DMG, PKG and Payload layers (p7zip / 7-Zip)
- **fc-scan** reads font family names (fontconfig), unless the native metadata backend is selected

## Things you can try
- Debian/Ubuntu:
~~~
$ sudo apt install p7zip-full fontconfig
~~~
- Fedora:
~~~
$ sudo dnf install p7zip p7zip-plugins fontconfig
~~~
- Or read family names without fontconfig:
~~~
$ fontnexus build --metadata native
~~~`,
	}

	missingWindowsFontsIssue = &Issue{
		id: MissingWindowsFontsId,
		mdMsg: `
# Windows fonts not found!

The Microsoft collection is built from a copy of a fully updated
` + "`C:\\Windows\\Fonts`" + ` directory, placed at ` + "`source/windows/Fonts`" + `.

## Things you can try
- Copy the Fonts directory from an up-to-date Windows installation
- Make sure the Windows version matches ` + "`microsoft.windows_version`" + ` in your config`,
	}

	manifestGroupsNotFoundIssue = &Issue{
		id: ManifestGroupsNotFoundId,
		mdMsg: `
# No font groups in the manifest!

The font groups are read from the AUR ` + "`ttf-ms-win<N>-auto`" + ` PKGBUILD. The
downloaded text did not contain any ` + "`_ttf_ms_<group>=( ... )`" + ` arrays.

## Things you can try
- Open the manifest URL in a browser and check that it is a PKGBUILD
- Check ` + "`microsoft.windows_version`" + `; the package must exist for that version`,
		docLinks: []HttpLink{"https://aur.archlinux.org/packages/ttf-ms-win11-auto"},
	}

	missingGroupFileIssue = &Issue{
		id: MissingGroupFileId,
		mdMsg: `
# A font listed by the manifest is missing!

Every file of every group must exist in ` + "`source/windows/Fonts`" + `, even for
disabled groups, so that group sizes can be reported.

## Things you can try
- Install all optional Windows features and language packs, update Windows,
  and copy the Fonts directory again`,
	}

	archivesNotFoundIssue = &Issue{
		id: ArchivesNotFoundId,
		mdMsg: `
# No font archives found!

The Apple fonts page did not link to any ` + "`.dmg`" + ` archives.

## Things you can try
- Open the page in a browser; Apple may have moved the downloads
- Update ` + "`apple.fonts_page`" + ` in your config if the address changed`,
		docLinks: []HttpLink{"https://developer.apple.com/fonts/"},
	}

	archiveDownloadFailedIssue = &Issue{
		id: ArchiveDownloadFailedId,
		mdMsg: `
# Download failed!

An archive could not be downloaded, or ended up empty on disk. Already
downloaded archives are kept and only re-fetched when they change, so a
re-run is cheap.

## Things you can try
- Check your network connection and run the build again`,
	}

	extractionFailedIssue = &Issue{
		id: ExtractionFailedId,
		mdMsg: `
# Extraction failed!

7-Zip returned an error while unpacking a font archive layer.

## Things you can try
- Delete the cached archive under ` + "`source/apple-dmgs`" + ` and run again
- Update 7-Zip; older p7zip releases cannot read every DMG variant`,
	}

	familyNameNotFoundIssue = &Issue{
		id: FamilyNameNotFoundId,
		mdMsg: `
# Font has no English family name!

Fonts are sorted by their English family name. This font does not declare
one, so it cannot be placed in the output.

## Things you can try
- Inspect the font:
~~~
$ fc-scan --format "%{[]family,familylang{%{family} (%{familylang})\n}}" <font>
~~~`,
	}

	unsafeRemovalIssue = &Issue{
		id: UnsafeRemovalId,
		mdMsg: `
# Cannot delete directories safely!

This platform lacks a symlink-safe recursive delete, so the previous output
and temporary directories are not removed automatically.

## Things you can try
- Delete the named directory manually and run the build again`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Things you can try
- Show the effective configuration:
~~~
$ fontnexus config show
~~~
- Write a fresh default file:
~~~
$ fontnexus config init
~~~`,
	}

	issues = map[Id]*Issue{
		missingDependencyIssue.Id():      missingDependencyIssue,
		missingWindowsFontsIssue.Id():    missingWindowsFontsIssue,
		manifestGroupsNotFoundIssue.Id(): manifestGroupsNotFoundIssue,
		missingGroupFileIssue.Id():       missingGroupFileIssue,
		archivesNotFoundIssue.Id():       archivesNotFoundIssue,
		archiveDownloadFailedIssue.Id():  archiveDownloadFailedIssue,
		extractionFailedIssue.Id():       extractionFailedIssue,
		familyNameNotFoundIssue.Id():     familyNameNotFoundIssue,
		unsafeRemovalIssue.Id():          unsafeRemovalIssue,
		configLoadFailedIssue.Id():       configLoadFailedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	all := maps.Values(issues)
	slices.SortFunc(all, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return all
}

func Get(id Id) *Issue {
	return issues[id]
}
