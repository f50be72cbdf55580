package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souraizuni/ffxiv-best-craft/internal/domain"
)

func newWebStore(t *testing.T, hostLocale string) *SettingsStore {
	t.Helper()
	return NewSettingsStore(domain.PlatformWeb, hostLocale, allSources())
}

func newNativeStore(t *testing.T, hostLocale string) *SettingsStore {
	t.Helper()
	return NewSettingsStore(domain.PlatformNative, hostLocale, allSources())
}

func TestNewSettingsStore_Defaults(t *testing.T) {
	s := newWebStore(t, "en-US")
	assert.Equal(t, domain.Settings{
		Language:       "system",
		DataSource:     domain.DataSourceYYYYGames,
		DataSourceLang: domain.LangEN,
	}, s.Settings())

	s = newNativeStore(t, "zh-Hant-TW")
	assert.Equal(t, domain.DataSourceLocal, s.Settings().DataSource)
	assert.Equal(t, domain.LangZhTW, s.Settings().DataSourceLang)
}

func TestNewSettingsStore_UnknownLocaleFallsBackToZhTW(t *testing.T) {
	// Asymétrie conservée: "zh*" → zh-CN mais locale inconnue → zh-TW.
	assert.Equal(t, domain.LangZhTW, newWebStore(t, "ko-KR").Settings().DataSourceLang)
	assert.Equal(t, domain.LangZhCN, newWebStore(t, "zh-SG").Settings().DataSourceLang)
}

func TestToJSON_ExactFields(t *testing.T) {
	s := newWebStore(t, "ja")

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(s.ToJSON()), &fields))
	assert.Equal(t, map[string]any{
		"language":       "system",
		"dataSource":     "yyyy.games",
		"dataSourceLang": "ja",
	}, fields)
}

func TestToJSON_ExtraFieldsAreNotWritten(t *testing.T) {
	s := newWebStore(t, "en")
	require.NoError(t, s.FromJSON([]byte(`{"theme":"dark","dataSource":"xivapi"}`)))

	assert.NotContains(t, s.ToJSON(), "theme")
}

func TestFromJSON_LocalDependsOnPlatform(t *testing.T) {
	web := newWebStore(t, "en")
	require.NoError(t, web.FromJSON([]byte(`{"dataSource":"local"}`)))
	assert.Equal(t, domain.DataSourceYYYYGames, web.Settings().DataSource)

	native := newNativeStore(t, "en")
	require.NoError(t, native.FromJSON([]byte(`{"dataSource":"local"}`)))
	assert.Equal(t, domain.DataSourceLocal, native.Settings().DataSource)
}

func TestFromJSON_DataSourceNormalization(t *testing.T) {
	tests := []struct {
		in   domain.DataSourceID
		want domain.DataSourceID
	}{
		{domain.DataSourceXivAPI, domain.DataSourceXivAPI},
		{domain.DataSourceYYYYBeta, domain.DataSourceYYYYBeta},
		{domain.DataSourceYYYYGames, domain.DataSourceYYYYGames},
		{domain.DataSourceCafe, domain.DataSourceYYYYGames},
		{"nonsense", domain.DataSourceYYYYGames},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			s := newNativeStore(t, "en")
			require.NoError(t, s.FromJSON([]byte(`{"dataSource":"`+string(tt.in)+`"}`)))
			assert.Equal(t, tt.want, s.Settings().DataSource)
		})
	}
}

func TestFromJSON_BareZhBecomesZhCN(t *testing.T) {
	s := newWebStore(t, "en")
	require.NoError(t, s.FromJSON([]byte(`{"dataSourceLang":"zh"}`)))
	assert.Equal(t, domain.LangZhCN, s.Settings().DataSourceLang)
}

func TestFromJSON_ShallowMerge(t *testing.T) {
	s := newWebStore(t, "de")
	require.NoError(t, s.FromJSON([]byte(`{"language":"fr-FR"}`)))

	assert.Equal(t, domain.Settings{
		Language:       "fr-FR",
		DataSource:     domain.DataSourceYYYYGames,
		DataSourceLang: domain.LangDE,
	}, s.Settings())
}

func TestFromJSON_NonObjectStillNormalizes(t *testing.T) {
	s := newNativeStore(t, "en")
	require.NoError(t, s.FromJSON([]byte(`{"dataSource":"cafe"}`)))
	require.NoError(t, s.FromJSON([]byte(`[]`)))
	assert.Equal(t, domain.DataSourceYYYYGames, s.Settings().DataSource)
}

func TestFromJSON_MalformedLeavesStateUntouched(t *testing.T) {
	s := newWebStore(t, "en")
	require.NoError(t, s.FromJSON([]byte(`{"dataSource":"xivapi","dataSourceLang":"ja"}`)))
	before := s.Settings()

	err := s.FromJSON([]byte(`{"dataSource":"local",`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.NotNil(t, perr.Unwrap())

	assert.Equal(t, before, s.Settings())
}

func TestFromJSON_RoundTripOfNormalizedSettings(t *testing.T) {
	cases := []struct {
		name     string
		platform domain.Platform
		settings string
	}{
		{"web yyyy.games", domain.PlatformWeb, `{"language":"system","dataSource":"yyyy.games","dataSourceLang":"zh-TW"}`},
		{"web xivapi", domain.PlatformWeb, `{"language":"en-US","dataSource":"xivapi","dataSourceLang":"en"}`},
		{"native local", domain.PlatformNative, `{"language":"ja","dataSource":"local"}`},
		{"beta", domain.PlatformWeb, `{"language":"system","dataSource":"yyyy.games-beta","dataSourceLang":"fr"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSettingsStore(tc.platform, "", allSources())
			require.NoError(t, s.FromJSON([]byte(tc.settings)))
			if tc.platform.IsNative() {
				// Langue héritée des valeurs par défaut: on la retire pour partir d'un état normalisé.
				s.state.DataSourceLang = ""
			}
			want := s.Settings()
			blob := s.ToJSON()

			other := NewSettingsStore(tc.platform, "ko", allSources())
			require.NoError(t, other.FromJSON([]byte(blob)))
			if !tc.platform.IsNative() {
				assert.Equal(t, want, other.Settings())
			}
			require.NoError(t, s.FromJSON([]byte(blob)))
			assert.Equal(t, want, s.Settings())
			assert.JSONEq(t, blob, s.ToJSON())
		})
	}
}

func TestLoadSettings_EnglishUILanguage(t *testing.T) {
	s := newWebStore(t, "zh-CN")
	require.Equal(t, domain.DataSourceYYYYGames, s.Settings().DataSource)

	s.LoadSettings(domain.SettingsPatch{Language: domain.StringPtr("en-US")})
	assert.Equal(t, domain.LangEN, s.Settings().DataSourceLang)
}

func TestLoadSettings_UnknownDataSourceResetsToFirstEntry(t *testing.T) {
	for _, id := range []domain.DataSourceID{domain.DataSourceCafe, domain.DataSourceYYYYBeta, "bogus"} {
		web := newWebStore(t, "en")
		web.LoadSettings(domain.SettingsPatch{DataSource: domain.DataSourcePtr(id)})
		assert.Equal(t, domain.DataSourceYYYYGames, web.Settings().DataSource, id)

		native := newNativeStore(t, "en")
		native.LoadSettings(domain.SettingsPatch{DataSource: domain.DataSourcePtr(id)})
		assert.Equal(t, domain.DataSourceLocal, native.Settings().DataSource, id)
	}
}

func TestLoadSettings_LocalWebBuildIsReset(t *testing.T) {
	s := newWebStore(t, "en")
	s.LoadSettings(domain.SettingsPatch{DataSource: domain.DataSourcePtr(domain.DataSourceLocal)})
	assert.Equal(t, domain.DataSourceYYYYGames, s.Settings().DataSource)
}

func TestLoadSettings_UnsupportedLangUsesLanguagePrefix(t *testing.T) {
	s := newWebStore(t, "zh-CN")
	s.LoadSettings(domain.SettingsPatch{
		Language:   domain.StringPtr("fr-FR"),
		DataSource: domain.DataSourcePtr(domain.DataSourceXivAPI),
	})
	assert.Equal(t, domain.LangFR, s.Settings().DataSourceLang)
}

func TestLoadSettings_UnsupportedLangFallsBackToFirstSupported(t *testing.T) {
	s := newWebStore(t, "zh-CN")
	s.LoadSettings(domain.SettingsPatch{DataSource: domain.DataSourcePtr(domain.DataSourceXivAPI)})

	assert.Equal(t, domain.DataSourceXivAPI, s.Settings().DataSource)
	assert.Equal(t, domain.LangEN, s.Settings().DataSourceLang)
}

func TestLoadSettings_LanguageDerivationRunsLast(t *testing.T) {
	s := newWebStore(t, "de")
	require.Equal(t, domain.LangDE, s.Settings().DataSourceLang)

	// de est valide pour yyyy.games mais la dérivation depuis language l'écrase.
	s.LoadSettings(domain.SettingsPatch{Language: domain.StringPtr("ja-JP")})
	assert.Equal(t, domain.LangJA, s.Settings().DataSourceLang)
}

func TestLoadSettings_DerivationMayPickUnsupportedLang(t *testing.T) {
	// Comportement conservé: zh-TW n'est pas servi par xivapi mais la dérivation finale l'impose.
	s := newWebStore(t, "en")
	s.LoadSettings(domain.SettingsPatch{
		Language:   domain.StringPtr("zh-TW"),
		DataSource: domain.DataSourcePtr(domain.DataSourceXivAPI),
	})
	assert.Equal(t, domain.LangZhTW, s.Settings().DataSourceLang)
}

func TestLoadSettings_ExplicitLangBypassesValidation(t *testing.T) {
	s := newWebStore(t, "en")
	s.LoadSettings(domain.SettingsPatch{
		Language:       domain.StringPtr("en-US"),
		DataSource:     domain.DataSourcePtr(domain.DataSourceXivAPI),
		DataSourceLang: domain.LangPtr(domain.LangZhCN),
	})

	assert.Equal(t, domain.DataSourceXivAPI, s.Settings().DataSource)
	assert.Equal(t, domain.LangZhCN, s.Settings().DataSourceLang)
}

func TestLoadSettings_EmptyExplicitLangCountsAsAbsent(t *testing.T) {
	s := newWebStore(t, "en")
	s.LoadSettings(domain.SettingsPatch{
		Language:       domain.StringPtr("ja"),
		DataSourceLang: domain.LangPtr(""),
	})
	assert.Equal(t, domain.LangJA, s.Settings().DataSourceLang)
}

func TestLoadSettings_LocalSourceHasNoLang(t *testing.T) {
	s := newNativeStore(t, "en")
	s.LoadSettings(domain.SettingsPatch{})

	assert.Equal(t, domain.DataSourceLocal, s.Settings().DataSource)
	assert.Equal(t, domain.DataSourceLangID(""), s.Settings().DataSourceLang)
	assert.Equal(t, `{"language":"system","dataSource":"local"}`, s.ToJSON())
}

func TestLoadSettings_SystemLanguageKeepsValidLang(t *testing.T) {
	s := newWebStore(t, "fr")
	s.LoadSettings(domain.SettingsPatch{})
	assert.Equal(t, domain.LangFR, s.Settings().DataSourceLang)
}

func TestLoadSettings_InvalidLangRepairedBeforeDerivation(t *testing.T) {
	s := newWebStore(t, "en")
	s.LoadSettings(domain.SettingsPatch{})
	require.NoError(t, s.FromJSON([]byte(`{"dataSourceLang":"ko"}`)))

	s.LoadSettings(domain.SettingsPatch{})
	assert.Equal(t, domain.LangZhCN, s.Settings().DataSourceLang)
}

func resolve(t *testing.T, s *SettingsStore) fakeSource {
	t.Helper()
	src, err := s.ResolveDataSourceLoader()(context.Background())
	require.NoError(t, err)
	fs, ok := src.(fakeSource)
	require.True(t, ok)
	return fs
}

func TestResolveDataSourceLoader_XivapiNarrowsUnsupportedLang(t *testing.T) {
	s := newWebStore(t, "en")
	require.NoError(t, s.FromJSON([]byte(`{"dataSource":"xivapi","dataSourceLang":"zh-CN"}`)))

	src := resolve(t, s)
	assert.Equal(t, domain.DataSourceXivAPI, src.id)
	assert.Equal(t, domain.LangEN, src.lang)
}

func TestResolveDataSourceLoader_YYYYGamesKeepsLang(t *testing.T) {
	s := newWebStore(t, "zh-TW")

	src := resolve(t, s)
	assert.Equal(t, domain.DataSourceYYYYGames, src.id)
	assert.Equal(t, domain.LangZhTW, src.lang)
}

func TestResolveDataSourceLoader_UnlistedSourceUsesDefault(t *testing.T) {
	web := newWebStore(t, "ja")
	require.NoError(t, web.FromJSON([]byte(`{"dataSource":"yyyy.games-beta"}`)))
	src := resolve(t, web)
	assert.Equal(t, domain.DataSourceYYYYGames, src.id)
	assert.Equal(t, domain.LangJA, src.lang)

	native := newNativeStore(t, "ja")
	require.NoError(t, native.FromJSON([]byte(`{"dataSource":"yyyy.games-beta"}`)))
	assert.Equal(t, domain.DataSourceLocal, resolve(t, native).id)
}

func TestResolveDataSourceLoader_LocalOnlyOnNative(t *testing.T) {
	native := newNativeStore(t, "en")
	assert.Equal(t, domain.DataSourceLocal, resolve(t, native).id)

	// Même si le registre la connaît, le build web n'expose pas la source locale.
	web := newWebStore(t, "en")
	web.state.DataSource = domain.DataSourceLocal
	assert.Equal(t, domain.DataSourceYYYYGames, resolve(t, web).id)
}

func TestResolveDataSourceLoader_IsLazy(t *testing.T) {
	reg := allSources()
	s := NewSettingsStore(domain.PlatformNative, "en", reg)

	loader := s.ResolveDataSourceLoader()
	assert.Zero(t, reg.Calls(domain.DataSourceLocal))

	_, err := loader(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Calls(domain.DataSourceLocal))
	assert.Zero(t, reg.Calls(domain.DataSourceYYYYGames))
}

func TestResolveDataSourceLoader_NoSources(t *testing.T) {
	s := NewSettingsStore(domain.PlatformWeb, "en", nil)

	_, err := s.ResolveDataSourceLoader()(context.Background())
	assert.ErrorIs(t, err, ErrNoDataSource)
}

func TestEffectiveLang(t *testing.T) {
	s := newWebStore(t, "en")
	require.NoError(t, s.FromJSON([]byte(`{"dataSource":"xivapi","dataSourceLang":"zh-TW"}`)))
	assert.Equal(t, domain.LangEN, s.EffectiveLang())

	native := newNativeStore(t, "de")
	assert.Equal(t, domain.LangDE, native.EffectiveLang(), "local accepts any value")
}
