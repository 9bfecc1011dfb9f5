package image

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // регистрация декодера: фото из браузера бывают и png
)

const (
	defaultMaxWidth     = 1280
	defaultMaxSizeBytes = 1 * 1024 * 1024
	defaultQuality      = 80
)

// ProcessedImage фото, подготовленное к отправке в AI-модель.
type ProcessedImage struct {
	Data     []byte
	Width    int
	Height   int
	MimeType string
}

// Processor уменьшает фотографии перед отправкой в модель: ограничивает ширину
// и итоговый размер, перекодирует в JPEG.
type Processor struct {
	maxWidth    int
	maxSizeByte int
	quality     int
}

func NewProcessor() *Processor {
	return &Processor{
		maxWidth:    defaultMaxWidth,
		maxSizeByte: defaultMaxSizeBytes,
		quality:     defaultQuality,
	}
}

// Process декодирует фото и при необходимости уменьшает его до лимитов.
func (p *Processor) Process(data []byte) (ProcessedImage, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return ProcessedImage{}, fmt.Errorf("не удалось декодировать изображение: %w", err)
	}

	origBounds := img.Bounds()
	origWidth := origBounds.Dx()
	origHeight := origBounds.Dy()
	if origWidth == 0 || origHeight == 0 {
		return ProcessedImage{}, fmt.Errorf("invalid image size: %dx%d", origWidth, origHeight)
	}

	quality := max(p.quality, defaultQuality)
	if quality > 100 {
		quality = 100
	}

	resizedWidth := min(origWidth, p.maxWidth)
	resizedHeight := origHeight * resizedWidth / origWidth

	var encoded []byte
	for {
		resized := resizeNearest(img, resizedWidth, resizedHeight)
		encoded, err = encodeJPEG(resized, quality)
		if err != nil {
			return ProcessedImage{}, err
		}

		if len(encoded) <= p.maxSizeByte {
			break
		}

		if resizedWidth <= 320 {
			return ProcessedImage{}, fmt.Errorf("image exceeds max size %d bytes even after downscale", p.maxSizeByte)
		}

		resizedWidth = max(1, int(float64(resizedWidth)*0.9))
		resizedHeight = max(1, origHeight*resizedWidth/origWidth)
	}

	return ProcessedImage{
		Data:     encoded,
		Width:    resizedWidth,
		Height:   resizedHeight,
		MimeType: "image/jpeg",
	}, nil
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func resizeNearest(src image.Image, width int, height int) *image.RGBA {
	if width <= 0 || height <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	srcBounds := src.Bounds()
	srcWidth := srcBounds.Dx()
	srcHeight := srcBounds.Dy()
	if srcWidth == 0 || srcHeight == 0 {
		return image.NewRGBA(image.Rect(0, 0, width, height))
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		srcY := srcBounds.Min.Y + y*srcHeight/height
		for x := range width {
			srcX := srcBounds.Min.X + x*srcWidth/width
			dst.Set(x, y, src.At(srcX, srcY))
		}
	}

	return dst
}
