package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

const longParagraph = "Ngân hàng Nhà nước vừa công bố điều chỉnh lãi suất điều hành nhằm hỗ trợ tăng trưởng kinh tế trong quý tới."

func TestFetcherSendsBrowserHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Chrome/120")
		assert.Equal(t, acceptLanguage, r.Header.Get("Accept-Language"))
		w.Header().Set("Content-Type", "text/html; charset=ISO-8859-1")
		_, _ = w.Write([]byte("<p>caf\xe9</p>"))
	}))
	defer srv.Close()

	data, err := NewFetcherWithClient(srv.Client()).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<p>café</p>", string(data))
}

func TestFetcherStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewFetcherWithClient(srv.Client()).Fetch(context.Background(), srv.URL)
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)
	assert.Equal(t, "HTTP error: 403", err.Error())
}

func TestFetcherTriesOnce(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewFetcherWithClient(srv.Client()).Fetch(context.Background(), srv.URL)
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSiteLookup(t *testing.T) {
	site, ok := SiteFor("www.vnexpress.net")
	require.True(t, ok)
	assert.Equal(t, "VnExpress", site.Name)

	_, ok = SiteFor("example.com")
	assert.False(t, ok)

	assert.True(t, IsVietnameseSite("zingnews.vn"))
	assert.True(t, IsVietnameseSite("www.24h.com.vn"))
	assert.False(t, IsVietnameseSite("bbc.co.uk"))
}

func TestFromRenderedUsesSiteTable(t *testing.T) {
	doc := mustDoc(t, `<html><head><title>Tin - VnExpress</title></head><body>
		<h1 class="title-detail">Lãi suất giảm</h1>
		<div class="fck_detail">
			<p>Ngắn</p>
			<p>`+longParagraph+`</p>
			<p>Đoạn thứ hai cũng đủ dài để được giữ lại.</p>
		</div></body></html>`)

	title, content := fromRendered(doc, "vnexpress.net")
	assert.Equal(t, "Lãi suất giảm", title)
	assert.Equal(t, longParagraph+"\n\nĐoạn thứ hai cũng đủ dài để được giữ lại.", content)
}

func TestFromRenderedUnknownSiteUsesLooseSelectorsAndTitleTag(t *testing.T) {
	doc := mustDoc(t, `<html><head><title>Bài viết hay - Báo Mới</title></head><body>
		<div class="entry-content">Phần một</div><div class="entry-content">Phần hai</div>
		</body></html>`)

	title, content := fromRendered(doc, "example.com")
	assert.Equal(t, "Bài viết hay", title)
	assert.Equal(t, "Phần một\nPhần hai", content)
}

func TestGenericParagraphsFiltersJunk(t *testing.T) {
	doc := mustDoc(t, `<article>
		<p>`+longParagraph+`</p>
		<p>© 2024 Bản quyền thuộc về tòa soạn báo điện tử</p>
		<p>Tags: kinh tế, lãi suất, ngân hàng nhà nước</p>
		<p>12/05/2024 cập nhật lúc 10 giờ sáng theo giờ Hà Nội</p>
		<p>Quá ngắn</p>
		<p>Các chuyên gia cho rằng quyết định này sẽ hỗ trợ doanh nghiệp.</p>
		<p>Thị trường chứng khoán phản ứng tích cực ngay trong phiên sáng.</p>
	</article>`)

	content := genericParagraphs(doc)
	parts := strings.Split(content, "\n\n")
	require.Len(t, parts, 3)
	assert.Equal(t, longParagraph, parts[0])
	assert.NotContains(t, content, "©")
	assert.NotContains(t, content, "Tags:")
	assert.NotContains(t, content, "12/05/2024")
}

func TestGenericParagraphsNeedsThree(t *testing.T) {
	doc := mustDoc(t, `<article><p>`+longParagraph+`</p><p>`+longParagraph+` Hai.</p></article>`)
	assert.Empty(t, genericParagraphs(doc))
}

func TestFromStaticBasicSelectors(t *testing.T) {
	doc := mustDoc(t, `<h1>Tiêu đề chung</h1><h1 class="title-page-detail">Tiêu đề Dân trí</h1>
		<div class="singular-content"><p>Dòng một.</p><p>Dòng hai.</p></div>`)

	title, content := fromStatic(doc, "dantri.com.vn")
	assert.Equal(t, "Tiêu đề Dân trí", title)
	assert.Equal(t, "Dòng một.Dòng hai.", content)
}

type fakeStage struct {
	name    string
	article *Article
	err     error
	calls   int
}

func (f *fakeStage) Name() string { return f.name }

func (f *fakeStage) Extract(context.Context, string) (*Article, error) {
	f.calls++
	if f.article == nil {
		return nil, f.err
	}
	copied := *f.article
	return &copied, f.err
}

func TestWaterfallStopsAtFirstSufficientStage(t *testing.T) {
	first := &fakeStage{name: "a", article: &Article{Title: "T", Content: strings.Repeat("x", 250)}}
	second := &fakeStage{name: "b", article: &Article{Content: strings.Repeat("y", 300)}}

	var accepted string
	w := NewWaterfall(ArticleThreshold, first, second).OnAccept(func(s string) { accepted = s })
	article, err := w.Extract(context.Background(), "https://vnexpress.net/a.html")
	require.NoError(t, err)

	assert.Equal(t, "a", article.Stage)
	assert.Equal(t, 0, second.calls)
	assert.Equal(t, "a", accepted)
}

func TestWaterfallAdvancesBelowThresholdAndKeepsTitle(t *testing.T) {
	first := &fakeStage{name: "a", article: &Article{Title: "Tiêu đề", Content: "ngắn"}}
	failing := &fakeStage{name: "b", err: errors.New("boom")}
	third := &fakeStage{name: "c", article: &Article{Title: "Khác", Content: strings.Repeat("z", 120)}}

	article, err := NewWaterfall(TranslateThreshold, first, failing, third).Extract(context.Background(), "https://example.com/x")
	require.NoError(t, err)

	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, "c", article.Stage)
	assert.Equal(t, "Tiêu đề", article.Title)
}

func TestWaterfallReturnsBestPartial(t *testing.T) {
	first := &fakeStage{name: "a", article: &Article{Title: "Tiêu đề", Content: "ngắn"}}
	second := &fakeStage{name: "b", article: &Article{Content: "dài hơn một chút"}}

	article, err := NewWaterfall(ArticleThreshold, first, second).Extract(context.Background(), "https://example.com/x")
	require.NoError(t, err)
	assert.Equal(t, "dài hơn một chút", article.Content)
	assert.Equal(t, "Tiêu đề", article.Title)
}

func TestWaterfallNoContent(t *testing.T) {
	empty := &fakeStage{name: "a", article: &Article{}}
	failing := &fakeStage{name: "b", err: errors.New("boom")}

	_, err := NewWaterfall(ArticleThreshold, empty, failing).Extract(context.Background(), "https://example.com/x")
	assert.ErrorIs(t, err, ErrNoContent)

	_, err = NewWaterfall(ArticleThreshold, empty).Extract(context.Background(), "not a url")
	assert.Error(t, err)
}

type untitledStage struct {
	fakeStage
}

func (untitledStage) FallbackTitle() string { return "Untitled" }

func TestWaterfallTakesTitleFromLaterStage(t *testing.T) {
	static := &untitledStage{fakeStage{name: "readability", article: &Article{Content: "ngắn"}}}
	rendered := &fakeStage{name: "browser", article: &Article{Title: "Tiêu đề thật của bài viết", Content: strings.Repeat("x", 300)}}

	article, err := NewWaterfall(ArticleThreshold, static, rendered).Extract(context.Background(), "https://vnexpress.net/a.html")
	require.NoError(t, err)
	assert.Equal(t, "browser", article.Stage)
	assert.Equal(t, "Tiêu đề thật của bài viết", article.Title)
}

func TestWaterfallFallbackTitleOnlyForAcceptingStage(t *testing.T) {
	static := &untitledStage{fakeStage{name: "readability", article: &Article{Content: strings.Repeat("x", 300)}}}
	article, err := NewWaterfall(ArticleThreshold, static).Extract(context.Background(), "https://vnexpress.net/a.html")
	require.NoError(t, err)
	assert.Equal(t, "Untitled", article.Title)

	static = &untitledStage{fakeStage{name: "readability", article: &Article{Content: "ngắn"}}}
	plain := &fakeStage{name: "selectors", article: &Article{Content: strings.Repeat("y", 300)}}
	article, err = NewWaterfall(ArticleThreshold, static, plain).Extract(context.Background(), "https://vnexpress.net/a.html")
	require.NoError(t, err)
	assert.Equal(t, "selectors", article.Stage)
	assert.Empty(t, article.Title)
}

func TestArticleWaterfallNeedsMoreThan200Chars(t *testing.T) {
	first := &fakeStage{name: "a", article: &Article{Title: "T", Content: strings.Repeat("x", 200)}}
	second := &fakeStage{name: "b", article: &Article{Content: strings.Repeat("y", 201)}}

	article, err := NewWaterfall(ArticleThreshold, first, second).Extract(context.Background(), "https://example.com/x")
	require.NoError(t, err)
	assert.Equal(t, "b", article.Stage)
	assert.Equal(t, 1, first.calls)
}

type fakeRenderer struct {
	html  string
	calls int
}

func (f *fakeRenderer) Render(context.Context, string) (*goquery.Document, error) {
	f.calls++
	return goquery.NewDocumentFromReader(strings.NewReader(f.html))
}

func TestBrowserSkipsForeignHostsWhenRestricted(t *testing.T) {
	r := &fakeRenderer{html: `<h1>x</h1>`}
	b := NewBrowser(r)
	b.OnlyVietnamese = true

	article, err := b.Extract(context.Background(), "https://example.com/a")
	require.NoError(t, err)
	assert.Nil(t, article)
	assert.Equal(t, 0, r.calls)

	article, err = b.Extract(context.Background(), "https://thanhnien.vn/a.htm")
	require.NoError(t, err)
	assert.Equal(t, "x", article.Title)
}

func TestSelectorsStageAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><h1>Tin nóng</h1><main>
			<p>` + longParagraph + `</p>
			<p>Các chuyên gia cho rằng quyết định này sẽ hỗ trợ doanh nghiệp.</p>
			<p>Thị trường chứng khoán phản ứng tích cực ngay trong phiên sáng.</p>
		</main></body></html>`))
	}))
	defer srv.Close()

	article, err := NewSelectors(NewFetcherWithClient(srv.Client())).Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Tin nóng", article.Title)
	assert.True(t, strings.HasPrefix(article.Content, longParagraph))
}

func TestReadabilityStageAgainstServer(t *testing.T) {
	body := strings.Repeat("<p>"+longParagraph+" Thêm chi tiết về diễn biến thị trường và phản ứng của doanh nghiệp.</p>\n", 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><title>Lãi suất - Báo</title></head><body>
			<nav><a href="/">Trang chủ</a></nav>
			<article><h1>Lãi suất giảm</h1>` + body + `</article></body></html>`))
	}))
	defer srv.Close()

	article, err := NewReadability(NewFetcherWithClient(srv.Client())).Extract(context.Background(), srv.URL+"/bai-viet.html")
	require.NoError(t, err)
	assert.Equal(t, "Lãi suất giảm", article.Title)
	assert.Contains(t, article.Content, "Ngân hàng Nhà nước")
	assert.GreaterOrEqual(t, runeLen(article.Content), ArticleThreshold)
}

func TestLinksFromDocument(t *testing.T) {
	base, _ := url.Parse("https://vnexpress.net/kinh-doanh")
	doc := mustDoc(t, `<div>
		<article class="item-news"><h3 class="title-news"><a href="/lai-suat-giam-manh-4712345.html">Lãi suất ngân hàng giảm mạnh trong tháng này</a></h3></article>
		<article class="item-news"><h3 class="title-news"><a href="https://vnexpress.net/lai-suat-giam-manh-4712345.html">Lãi suất ngân hàng giảm mạnh trong tháng này</a></h3></article>
		<div class="story"><a href="/video/xem-ngay">Video nổi bật nhất trong ngày hôm nay</a></div>
		<div class="story"><a href="/gia-vang-4712999.html">Giá vàng</a></div>
		<h3 class="title-news"><a href="/chung-khoan/phien-sang-4713000.html">Chứng khoán phục hồi trong phiên sáng</a></h3>
	</div>`)

	links := LinksFromDocument(doc, base, 10)
	require.Len(t, links, 2)
	assert.Equal(t, "https://vnexpress.net/lai-suat-giam-manh-4712345.html", links[0].URL)
	assert.Equal(t, links[0].Title, links[0].Description)
	assert.Equal(t, "https://vnexpress.net/chung-khoan/phien-sang-4713000.html", links[1].URL)

	assert.Len(t, LinksFromDocument(doc, base, 1), 1)
}

func TestLinksFallbackScan(t *testing.T) {
	base, _ := url.Parse("https://example.com/chuyen-muc")
	doc := mustDoc(t, `<ul>
		<li><a href="/bai-viet/thi-truong">Thị trường bất động sản khởi sắc cuối năm</a></li>
		<li><a href="/page#top">Thị trường bất động sản khởi sắc cuối năm nay</a></li>
		<li><a href="javascript:void(0)">Thị trường bất động sản khởi sắc 123456</a></li>
		<li><a href="/ngan">Ngắn</a></li>
	</ul>`)

	links := LinksFromDocument(doc, base, 10)
	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com/bai-viet/thi-truong", links[0].URL)
}

func TestLinkFinderUsesRenderer(t *testing.T) {
	r := &fakeRenderer{html: `<div class="captcha"></div><h2><a href="/tin-1234.html">Một tiêu đề bài báo đủ dài để lấy</a></h2>`}
	links, err := NewLinkFinder(r).Links(context.Background(), "https://news.example.com/muc", 5)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "https://news.example.com/tin-1234.html", links[0].URL)

	_, err = NewLinkFinder(r).Links(context.Background(), "::bad", 5)
	assert.Error(t, err)
}

func TestBlocked(t *testing.T) {
	assert.True(t, Blocked(mustDoc(t, `<div id="access-check"></div>`)))
	assert.False(t, Blocked(mustDoc(t, `<div class="content"></div>`)))
}

type mapExtractor map[string]*Article

func (m mapExtractor) Extract(_ context.Context, u string) (*Article, error) {
	if a, ok := m[u]; ok {
		return a, nil
	}
	return nil, ErrNoContent
}

func TestExtractLinksKeepsOrderAndFallsBack(t *testing.T) {
	long := strings.Repeat("nội dung ", 20)
	ex := mapExtractor{
		"https://a/1": {Content: long, Stage: "readability"},
		"https://a/2": {Content: "ngắn"},
	}
	links := []Link{
		{Title: "Một", URL: "https://a/1", Description: "Một"},
		{Title: "Hai", URL: "https://a/2", Description: "Hai"},
		{Title: "Ba", URL: "https://a/3", Description: "Ba"},
	}

	articles := ExtractLinks(context.Background(), ex, links, 2)
	require.Len(t, articles, 3)
	assert.Equal(t, long, articles[0].Content)
	assert.Equal(t, "Hai", articles[1].Content)
	assert.Equal(t, "Ba", articles[2].Content)
	assert.Equal(t, "https://a/3", articles[2].URL)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b\n\nc & d", cleanText("  a \t b \n\n\n <b>c</b> &amp; d "))
	assert.Equal(t, "x y", cleanLine("x\n  y"))
}
