package template

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/campushq/sitebuilder/internal/database"
	"github.com/campushq/sitebuilder/internal/models"
	"github.com/campushq/sitebuilder/internal/utils"
	"gorm.io/datatypes"
)

// Manifest is the on-disk/S3 shape of a template bundle file.
type Manifest struct {
	Name      string              `json:"name"`
	Slug      string              `json:"slug"`
	Category  string              `json:"category"`
	Mode      models.TemplateMode `json:"mode"`
	IsDefault bool                `json:"is_default"`
	Pages     []PageBundle        `json:"pages"`
	Theme     ThemeBundle         `json:"theme"`
}

// SeedDefaultTemplates installs the built-in starter templates. Existing
// slugs are left untouched, so tweaked rows survive restarts.
func SeedDefaultTemplates() error {
	for _, m := range builtinTemplates() {
		if err := upsertManifest(m, false); err != nil {
			return err
		}
	}
	return nil
}

// SyncBundles loads every bundle file from the configured store (local dir or
// S3) and upserts it by slug. Platform operators drop new .json bundles there
// to ship templates without a deploy.
func SyncBundles() error {
	names, err := utils.ListBundles()
	if err != nil {
		return err
	}

	for _, name := range names {
		raw, err := utils.ReadBundle(name)
		if err != nil {
			return fmt.Errorf("read bundle %s: %w", name, err)
		}
		var m Manifest
		if err := json.Unmarshal(raw, &m); err != nil {
			return fmt.Errorf("parse bundle %s: %w", name, err)
		}
		if m.Slug == "" {
			log.Printf("⚠️  Skipping bundle %s: missing slug", name)
			continue
		}
		if err := upsertManifest(m, true); err != nil {
			return fmt.Errorf("install bundle %s: %w", name, err)
		}
	}
	return nil
}

func upsertManifest(m Manifest, overwrite bool) error {
	pages, err := json.Marshal(m.Pages)
	if err != nil {
		return err
	}
	themeRaw, err := json.Marshal(m.Theme)
	if err != nil {
		return err
	}

	var existing models.SiteTemplate
	err = database.DB.Where("slug = ?", m.Slug).First(&existing).Error
	if err == nil {
		if !overwrite {
			return nil
		}
		existing.Name = m.Name
		existing.Category = m.Category
		existing.Mode = m.Mode
		existing.IsDefault = m.IsDefault
		existing.Pages = datatypes.JSON(pages)
		existing.Theme = datatypes.JSON(themeRaw)
		return database.DB.Save(&existing).Error
	}

	tpl := models.SiteTemplate{
		Name:      m.Name,
		Slug:      m.Slug,
		Category:  m.Category,
		Mode:      m.Mode,
		IsDefault: m.IsDefault,
		Pages:     datatypes.JSON(pages),
		Theme:     datatypes.JSON(themeRaw),
	}
	return database.DB.Create(&tpl).Error
}

func builtinTemplates() []Manifest {
	return []Manifest{
		{
			Name:      "Academy Classic",
			Slug:      "academy-classic",
			Category:  "school",
			Mode:      models.ModeFullWebsite,
			IsDefault: true,
			Theme: ThemeBundle{
				PrimaryColor:    "#1d4ed8",
				SecondaryColor:  "#1e293b",
				AccentColor:     "#f59e0b",
				BackgroundColor: "#ffffff",
				SurfaceColor:    "#f1f5f9",
				TextColor:       "#0f172a",
				MutedColor:      "#64748b",
				HeadingFont:     "Merriweather",
				BodyFont:        "Inter",
				MonoFont:        "JetBrains Mono",
				BorderRadius:    "8px",
				ButtonRadius:    "8px",
				CardRadius:      "12px",
				ButtonStyle:     models.ButtonSolid,
				ShadowStyle:     models.ShadowSubtle,
				ContainerWidth:  "1200px",
			},
			Pages: []PageBundle{
				{
					Slug:       "home",
					Title:      "Home",
					IsHomepage: true,
					Content: json.RawMessage(`[
						{"type":"navigation","props":{"brand":"Our School","links":[{"label":"Home","href":"/home"},{"label":"About","href":"/about"},{"label":"Admissions","href":"/admissions"},{"label":"News","href":"/news"}]}},
						{"type":"hero","props":{"title":"Welcome to Our School","subtitle":"A community of curious minds","cta_label":"Apply Now","cta_href":"/admissions"}},
						{"type":"section","children":[
							{"type":"features-grid","props":{"items":[
								{"icon":"📚","title":"Academics","text":"Rigorous programs from primary to secondary."},
								{"icon":"🏅","title":"Athletics","text":"Teams and clubs for every interest."},
								{"icon":"🎨","title":"Arts","text":"Music, theatre and visual arts year-round."}
							]}}
						]},
						{"type":"footer","props":{"text":"© Our School","links":[{"label":"Contact","href":"/contact"}]}}
					]`),
				},
				{
					Slug:  "about",
					Title: "About Us",
					Content: json.RawMessage(`[
						{"type":"navigation","props":{"brand":"Our School","links":[{"label":"Home","href":"/home"},{"label":"About","href":"/about"}]}},
						{"type":"section","children":[
							{"type":"heading","props":{"level":"h1","text":"About Us"}},
							{"type":"text","props":{"text":"Our mission is to help every student thrive."}}
						]},
						{"type":"footer","props":{"text":"© Our School"}}
					]`),
				},
				{
					Slug:  "admissions",
					Title: "Admissions",
					Content: json.RawMessage(`[
						{"type":"section","children":[
							{"type":"heading","props":{"level":"h1","text":"Admissions"}},
							{"type":"form-embed","props":{"form":"admissions-inquiry","fields":[
								{"label":"Parent name","name":"parent_name","type":"text"},
								{"label":"Email","name":"email","type":"email"},
								{"label":"Message","name":"message","type":"textarea"}
							]}}
						]}
					]`),
				},
				{
					Slug:  "news",
					Title: "News",
					Content: json.RawMessage(`[
						{"type":"section","children":[
							{"type":"heading","props":{"level":"h1","text":"School News"}},
							{"type":"cms-list","props":{"collection":"news","base_path":"/news"}}
						]}
					]`),
				},
				{
					Slug:          "portal-login",
					Title:         "Portal Login",
					IsPortalLogin: true,
					Content: json.RawMessage(`[
						{"type":"section","children":[
							{"type":"heading","props":{"level":"h1","text":"Student & Parent Portal"}},
							{"type":"form-embed","props":{"fields":[
								{"label":"Email","name":"email","type":"email"},
								{"label":"Password","name":"password","type":"password"}
							],"submit_label":"Log In"}}
						]}
					]`),
				},
			},
		},
		{
			Name:     "Portal Essentials",
			Slug:     "portal-essentials",
			Category: "portal",
			Mode:     models.ModePortalOnly,
			Theme: ThemeBundle{
				PrimaryColor:    "#0f766e",
				SecondaryColor:  "#134e4a",
				AccentColor:     "#ea580c",
				BackgroundColor: "#fafaf9",
				SurfaceColor:    "#ffffff",
				TextColor:       "#1c1917",
				MutedColor:      "#78716c",
				HeadingFont:     "Inter",
				BodyFont:        "Inter",
				ButtonStyle:     models.ButtonOutline,
				ShadowStyle:     models.ShadowMedium,
			},
			Pages: []PageBundle{
				{
					Slug:          "portal-login",
					Title:         "Portal Login",
					IsPortalLogin: true,
					IsHomepage:    true,
					Content: json.RawMessage(`[
						{"type":"hero","props":{"title":"School Portal","subtitle":"Grades, attendance and messages in one place"}},
						{"type":"section","children":[
							{"type":"form-embed","props":{"fields":[
								{"label":"Email","name":"email","type":"email"},
								{"label":"Password","name":"password","type":"password"}
							],"submit_label":"Log In"}}
						]}
					]`),
				},
			},
		},
	}
}
