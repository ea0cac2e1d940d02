package gateway

import (
	"encoding/base64"
	"math"
	"strconv"

	"github.com/valyala/fastjson"

	"github.com/s0up4200/qbitgate/qbittorrent"
)

// Request bodies are inspected with fastjson so that a field of the wrong
// JSON type is told apart from a missing one.

// SetFilesPriorityRequest is the body of setFilesPriority
type SetFilesPriorityRequest struct {
	IDs      []int
	Priority TorrentFilePriority
}

// RenameFileRequest is the body of renameFile
type RenameFileRequest struct {
	ID   int
	Name string
}

// AddRequest is the body of torrents/add
type AddRequest struct {
	Links []string
	Files []AddFile

	SavePath          string
	DownloadCookie    string
	Category          string
	TorrentName       string
	SkipHashCheck     *bool
	StartTorrent      *bool
	CreateSubfolder   *bool
	AutoManage        *bool
	DownloadEdgeFirst *bool
	DownloadSeqOrder  *bool
	DownloadLimit     int64
	UploadLimit       int64
}

// AddFile is a .torrent file submitted as base64
type AddFile struct {
	Name    string
	Content []byte
}

func parseObject(op string, body []byte) (*fastjson.Value, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(body)
	if err != nil {
		return nil, &Error{Kind: KindValidation, Op: op, Err: err}
	}
	if v.Type() != fastjson.TypeObject {
		return nil, invalid(op, "body", "must be a JSON object")
	}
	return v, nil
}

func stringField(op string, v *fastjson.Value, field string) (string, error) {
	f := v.Get(field)
	if f == nil {
		return "", invalid(op, field, "is required")
	}
	if f.Type() != fastjson.TypeString {
		return "", invalid(op, field, "must be a string")
	}
	return string(f.GetStringBytes()), nil
}

func numberField(op string, v *fastjson.Value, field string) (float64, error) {
	f := v.Get(field)
	if f == nil {
		return 0, invalid(op, field, "is required")
	}
	if f.Type() != fastjson.TypeNumber {
		return 0, invalid(op, field, "must be a number")
	}
	return f.GetFloat64(), nil
}

func integral(n float64) bool {
	return n == math.Trunc(n) && n >= math.MinInt32 && n <= math.MaxInt32
}

// truncate converts a JSON number to an integer, dropping the fraction
func truncate(n float64) (int64, bool) {
	t := math.Trunc(n)
	if t < math.MinInt64 || t >= math.MaxInt64 {
		return 0, false
	}
	return int64(t), true
}

// ParseDeleteFiles reads the optional deleteFiles flag. A missing, malformed
// or non-boolean value means false.
func ParseDeleteFiles(body []byte) bool {
	var p fastjson.Parser
	v, err := p.ParseBytes(body)
	if err != nil {
		return false
	}
	f := v.Get("deleteFiles")
	return f != nil && f.Type() == fastjson.TypeTrue
}

// ParseSavePath reads a non-empty savePath
func ParseSavePath(body []byte) (string, error) {
	const op = "setSavePath"
	v, err := parseObject(op, body)
	if err != nil {
		return "", err
	}
	return stringField(op, v, "savePath")
}

// ParseName reads a non-empty torrent name
func ParseName(body []byte) (string, error) {
	const op = "setName"
	v, err := parseObject(op, body)
	if err != nil {
		return "", err
	}
	return stringField(op, v, "name")
}

// ParseLimit reads a numeric rate limit, truncated toward zero
func ParseLimit(op string, body []byte) (int64, error) {
	v, err := parseObject(op, body)
	if err != nil {
		return 0, err
	}
	n, err := numberField(op, v, "limit")
	if err != nil {
		return 0, err
	}
	limit, ok := truncate(n)
	if !ok {
		return 0, invalid(op, "limit", "out of range")
	}
	return limit, nil
}

// ParseSetFilesPriority reads the file indices and the target priority
func ParseSetFilesPriority(body []byte) (SetFilesPriorityRequest, error) {
	const op = "setFilesPriority"
	var req SetFilesPriorityRequest

	v, err := parseObject(op, body)
	if err != nil {
		return req, err
	}

	ids := v.Get("ids")
	if ids == nil || ids.Type() != fastjson.TypeArray {
		return req, invalid(op, "ids", "must be an array of numbers")
	}
	items, _ := ids.Array()
	req.IDs = make([]int, 0, len(items))
	for _, item := range items {
		if item.Type() != fastjson.TypeNumber {
			return req, invalid(op, "ids", "must be an array of numbers")
		}
		n := item.GetFloat64()
		if !integral(n) {
			return req, invalid(op, "ids", "must be file indices")
		}
		req.IDs = append(req.IDs, int(n))
	}

	n, err := numberField(op, v, "priority")
	if err != nil {
		return req, err
	}
	if !integral(n) || !TorrentFilePriority(int(n)).Valid() {
		return req, invalid(op, "priority", "must be one of 0, 1, 6, 7")
	}
	req.Priority = TorrentFilePriority(int(n))

	return req, nil
}

// ParseRenameFile reads the file index and its new name
func ParseRenameFile(body []byte) (RenameFileRequest, error) {
	const op = "renameFile"
	var req RenameFileRequest

	v, err := parseObject(op, body)
	if err != nil {
		return req, err
	}

	n, err := numberField(op, v, "id")
	if err != nil {
		return req, err
	}
	if !integral(n) {
		return req, invalid(op, "id", "must be a file index")
	}
	req.ID = int(n)

	if req.Name, err = stringField(op, v, "name"); err != nil {
		return req, err
	}
	return req, nil
}

// ParseAdd reads an add request. At least one of links or files has to be
// well-formed; a malformed companion field is ignored.
func ParseAdd(body []byte) (AddRequest, error) {
	const op = "addTorrents"
	var req AddRequest

	v, err := parseObject(op, body)
	if err != nil {
		return req, err
	}

	links, linksOK := parseLinks(v.Get("links"))
	files, filesOK, err := parseFiles(op, v.Get("files"))
	if err != nil {
		return req, err
	}
	if !linksOK && !filesOK {
		return req, invalid(op, "links", "links or files are required")
	}
	if linksOK {
		req.Links = links
	}
	if filesOK {
		req.Files = files
	}

	req.SavePath = optionalString(v, "savePath")
	req.DownloadCookie = optionalString(v, "downloadCookie")
	req.Category = optionalString(v, "category")
	req.TorrentName = optionalString(v, "torrentName")
	req.SkipHashCheck = optionalBool(v, "skipHashCheck")
	req.StartTorrent = optionalBool(v, "startTorrent")
	req.CreateSubfolder = optionalBool(v, "createSubfolder")
	req.AutoManage = optionalBool(v, "autoManage")
	req.DownloadEdgeFirst = optionalBool(v, "downloadEdgeFirst")
	req.DownloadSeqOrder = optionalBool(v, "downloadSeqOrder")
	req.DownloadLimit = optionalLimit(v, "downloadLimit")
	req.UploadLimit = optionalLimit(v, "uploadLimit")

	return req, nil
}

func parseLinks(v *fastjson.Value) ([]string, bool) {
	if v == nil || v.Type() != fastjson.TypeArray {
		return nil, false
	}
	items, _ := v.Array()
	links := make([]string, 0, len(items))
	for _, item := range items {
		if item.Type() != fastjson.TypeString {
			return nil, false
		}
		links = append(links, string(item.GetStringBytes()))
	}
	return links, true
}

// parseFiles accepts [[name, base64], ...]. Content that is not valid
// base64 is a hard error, not a malformed field.
func parseFiles(op string, v *fastjson.Value) ([]AddFile, bool, error) {
	if v == nil || v.Type() != fastjson.TypeArray {
		return nil, false, nil
	}
	items, _ := v.Array()
	pairs := make([][2]string, 0, len(items))
	for _, item := range items {
		if item.Type() != fastjson.TypeArray {
			return nil, false, nil
		}
		tuple, _ := item.Array()
		if len(tuple) != 2 || tuple[0].Type() != fastjson.TypeString || tuple[1].Type() != fastjson.TypeString {
			return nil, false, nil
		}
		pairs = append(pairs, [2]string{string(tuple[0].GetStringBytes()), string(tuple[1].GetStringBytes())})
	}

	files := make([]AddFile, 0, len(pairs))
	for i, pair := range pairs {
		content, err := base64.StdEncoding.DecodeString(pair[1])
		if err != nil {
			return nil, false, invalid(op, "files["+strconv.Itoa(i)+"]", "content is not valid base64")
		}
		files = append(files, AddFile{Name: pair[0], Content: content})
	}
	return files, true, nil
}

func optionalString(v *fastjson.Value, field string) string {
	f := v.Get(field)
	if f == nil || f.Type() != fastjson.TypeString {
		return ""
	}
	return string(f.GetStringBytes())
}

func optionalBool(v *fastjson.Value, field string) *bool {
	f := v.Get(field)
	if f == nil {
		return nil
	}
	var b bool
	switch f.Type() {
	case fastjson.TypeTrue:
		b = true
	case fastjson.TypeFalse:
		b = false
	default:
		return nil
	}
	return &b
}

func optionalLimit(v *fastjson.Value, field string) int64 {
	f := v.Get(field)
	if f == nil || f.Type() != fastjson.TypeNumber {
		return 0
	}
	limit, ok := truncate(f.GetFloat64())
	if !ok || limit <= 0 {
		return 0
	}
	return limit
}

// upstreamAdd maps the request onto torrents/add field names
func (r AddRequest) upstreamAdd() qbittorrent.AddRequest {
	opts := map[string]string{}

	setString := func(key, value string) {
		if value != "" {
			opts[key] = value
		}
	}
	setBool := func(key string, value *bool) {
		if value != nil {
			opts[key] = strconv.FormatBool(*value)
		}
	}
	setLimit := func(key string, value int64) {
		if value > 0 {
			opts[key] = strconv.FormatInt(value, 10)
		}
	}

	setString("savepath", r.SavePath)
	setString("cookie", r.DownloadCookie)
	setString("category", r.Category)
	setString("rename", r.TorrentName)
	setBool("skip_checking", r.SkipHashCheck)
	if r.StartTorrent != nil {
		opts["paused"] = strconv.FormatBool(!*r.StartTorrent)
	}
	setBool("root_folder", r.CreateSubfolder)
	setBool("autoTMM", r.AutoManage)
	setBool("firstLastPiecePrio", r.DownloadEdgeFirst)
	setBool("sequentialDownload", r.DownloadSeqOrder)
	setLimit("dlLimit", r.DownloadLimit)
	setLimit("upLimit", r.UploadLimit)

	files := make([]qbittorrent.AddFile, 0, len(r.Files))
	for _, f := range r.Files {
		files = append(files, qbittorrent.AddFile{Name: f.Name, Content: f.Content})
	}

	return qbittorrent.AddRequest{
		URLs:    r.Links,
		Files:   files,
		Options: opts,
	}
}

// empty reports whether nothing would be submitted
func (r AddRequest) empty() bool {
	if len(r.Files) > 0 {
		return false
	}
	for _, link := range r.Links {
		if link != "" {
			return false
		}
	}
	return true
}
