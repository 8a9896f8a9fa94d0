package slideshow

import "github.com/stretchr/testify/mock"

// MockOS is a mock implementation of the OS interface.
type MockOS struct {
	mock.Mock
}

func (m *MockOS) setWallpaper(imagePath string) error {
	args := m.Called(imagePath)
	return args.Error(0)
}

func (m *MockOS) setWallpaperStyle(style Style) error {
	args := m.Called(style)
	return args.Error(0)
}

func (m *MockOS) getDesktopDimension() (int, int, error) {
	args := m.Called()
	return args.Int(0), args.Int(1), args.Error(2)
}
