// Package prayers holds the kapparot ritual text shown during the ceremony.
package prayers

import "github.com/abcstfabu/kapparot-online/pkg/models"

// Language selects one rendering of a prayer.
type Language string

const (
	Hebrew          Language = "hebrew"
	Transliteration Language = "transliteration"
	English         Language = "english"
)

// Languages is the display order of the language toggle.
var Languages = []Language{Hebrew, Transliteration, English}

// ParseLanguage falls back to Hebrew for anything unrecognised.
func ParseLanguage(s string) Language {
	for _, l := range Languages {
		if string(l) == s {
			return l
		}
	}
	return Hebrew
}

// Text is a prayer in every supported language.
type Text struct {
	Hebrew          string
	Transliteration string
	English         string
}

// In returns the rendering for l.
func (t Text) In(l Language) string {
	switch l {
	case Transliteration:
		return t.Transliteration
	case English:
		return t.English
	default:
		return t.Hebrew
	}
}

// Introductory is recited before every kapparot prayer.
var Introductory = Text{
	Hebrew:          `בְּנֵי אָדָם יֹשְׁבֵי חֹשֶׁךְ וְצַלְמָוֶת אֲסִירֵי עֳנִי וּבַרְזֶל: יוֹצִיאֵם מֵחֹשֶׁךְ וְצַלְמָוֶת וּמוֹסְרוֹתֵיהֶם יְנַתֵּק: אֱוִלִים מִדֶּרֶךְ פִּשְׁעָם וּמֵעֲוֹנֹתֵיהֶם יִתְעַנּוּ: כָּל אֹכֶל תְּתַעֵב נַפְשָׁם וַיַּגִּיעוּ עַד שַׁעֲרֵי מָוֶת: וַיִּזְעֲקוּ אֶל אֲדֹנָי בַּצַּר לָהֶם מִמְּצֻקוֹתֵיהֶם יוֹשִׁיעֵם: יִשְׁלַח דְּבָרוֹ וְיִרְפָּאֵם וִימַלֵּט מִשְּׁחִיתוֹתָם: יוֹדוּ לַיהוָה חַסְדּוֹ וְנִפְלְאוֹתָיו לִבְנֵי אָדָם: אִם יֵשׁ עָלָיו מַלְאָךְ מֵלִיץ אֶחָד מִנִּי אָלֶף, לְהַגִּיד לְאָדָם יָשְׁרוֹ: וַיְחֻנֶּנּוּ וַיֹּאמֶר פְּדָעֵהוּ מֵרֶדֶת שָׁחַת מָצָאתִי כֹפֶר:`,
	Transliteration: `B'nei adam yoshvei choshech v'tzalmavet asirei oni uvarzel: yotziem mechoshech v'tzalmavet umosrotehem yenatek: evilim miderech pish'am ume'avonoteihem yit'anu: kol ochel teta'ev nafsham vayagi'u ad sha'arei mavet: vayiz'aku el Adonai batzar lahem mimtzukoteihem yoshi'em: yishlach d'varo v'yirpa'em vimaltet mishchitotam: yodu l'Adonai chasdo v'nifla'otav livnei adam: im yesh alav mal'ach melitz echad mini alef, l'hagid l'adam yoshro: vayechunennu vayomer peda'ehu meredet shachat matzati chofer.`,
	English:         `Children of man who sit in darkness and the shadow of death, bound in affliction and iron chains: He brings them out from darkness and the shadow of death, and breaks their bonds. Fools, because of their transgression and their iniquities, are afflicted. Their soul abhors all food, and they draw near to the gates of death. Then they cry to the Lord in their trouble, and He delivers them from their distress. He sends His word and heals them, and rescues them from their destruction. Let them give thanks to the Lord for His steadfast love and His wonderful works to the children of man! If there be an angel over him, an interpreter, one among a thousand, to declare to man what is right for him, and he is gracious to him, and says, 'Deliver him from going down to the pit; I have found a ransom.'`,
}

var ceremony = map[models.PrayerType]Text{
	models.SelfMale: {
		Hebrew:          `זֶה חֲלִיפָתִי, זֶה תְּמוּרָתִי, זֶה כַּפָּרָתִי. זֶה הַכֶּסֶף יֵלֵךְ לִצְדָקָה וַאֲנִי אֶכָּנֵס וְאֵלֵךְ לְחַיִּים טוֹבִים אֲרֻכִּים וּלְשָׁלוֹם:`,
		Transliteration: `Zeh chalifati, zeh temurati, zeh kaparati. Zeh hakesef yelech litzedakah va'ani ekanes ve'elech l'chayim tovim arukim ul'shalom.`,
		English:         `This is my substitute, this is my exchange, this is my atonement. This money shall go to charity, and I shall enter and go to a good, long life and peace.`,
	},
	models.SelfFemale:   selfWoman,
	models.SelfPregnant: selfWoman,
	models.OtherMale: {
		Hebrew:          `זֶה חֲלִיפָתְךָ. זֶה תְּמוּרָתְךָ. זֶה כַּפָּרָתְךָ. זֶה הַכֶּסֶף יֵלֵךְ לִצְדָקָה, וְאַתָּה תִּכָּנֵס וְתֵלֵךְ לְחַיִּים טוֹבִים אֲרוּכִים וּלְשָׁלוֹם:`,
		Transliteration: `Zeh chalifatcha. Zeh temuratcha. Zeh kaparatcha. Zeh hakesef yelech litzedakah, ve'ata tikanes vetelech l'chayim tovim arukim ul'shalom.`,
		English:         `This is your substitute. This is your exchange. This is your atonement. This money shall go to charity, and you shall enter and go to a good, long life and peace.`,
	},
	models.OtherFemale: {
		Hebrew:          `זֶה חֲלִיפָתֵךְ. זֶה תְּמוּרָתֵךְ. זֶה כַּפָּרָתֵךְ. זֶה הַכֶּסֶף יֵלֵךְ לִצְדָקָה, וְאַתְּ תִּכָּנְסִי וְתֵלְכִי לְחַיִּים טוֹבִים אֲרוּכִים וּלְשָׁלוֹם:`,
		Transliteration: `Zeh chalifatech. Zeh temuratech. Zeh kaparatech. Zeh hakesef yelech litzedakah, ve'at tikans'i vetelchi l'chayim tovim arukim ul'shalom.`,
		English:         `This is your substitute. This is your exchange. This is your atonement. This money shall go to charity, and you shall enter and go to a good, long life and peace.`,
	},
	models.OtherPregnant: {
		Hebrew:          `זֶה חֲלִיפָתְכֶם. זֶה תְּמוּרָתְכֶם. זֶה כַּפָּרָתְכֶם. זֶה הַכֶּסֶף יֵלֵךְ לִצְדָקָה, וְאַתֶּם תִּכָּנְסוּ וְתֵלְכוּ לְחַיִּים טוֹבִים אֲרוּכִים וּלְשָׁלוֹם:`,
		Transliteration: `Zeh chalifatchem. Zeh temuratchem. Zeh kaparatchem. Zeh hakesef yelech litzedakah, ve'atem tikans'u vetelchu l'chayim tovim arukim ul'shalom.`,
		English:         `This is your substitute. This is your exchange. This is your atonement. This money shall go to charity, and you shall enter and go to a good, long life and peace.`,
	},
}

var selfWoman = Text{
	Hebrew:          `זֶה חֲלִיפָתִי. זֶה תְּמוּרָתִי. זֶה כַּפָּרָתִי. זֶה הַכֶּסֶף יֵלֵךְ לִצְדָקָה, וַאֲנִי אֶכָּנֵס וְאֵלֵךְ לְחַיִּים טוֹבִים אֲרוּכִים וּלְשָׁלוֹם:`,
	Transliteration: `Zeh chalifati. Zeh temurati. Zeh kaparati. Zeh hakesef yelech litzedakah, va'ani ekanes ve'elech l'chayim tovim arukim ul'shalom.`,
	English:         `This is my substitute. This is my exchange. This is my atonement. This money shall go to charity, and I shall enter and go to a good, long life and peace.`,
}

// For returns the main ceremony prayer for a leaf category.
func For(p models.PrayerType) (Text, bool) {
	t, ok := ceremony[p]
	return t, ok
}
