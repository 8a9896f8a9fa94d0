//go:build windows

package main

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/windows"

	"github.com/dixieflatline76/Easel/config"
	"github.com/dixieflatline76/Easel/util/log"
)

var instanceMutex windows.Handle

// acquireLock takes the single-instance lock, a named mutex. Returns false
// when another instance already owns it.
func acquireLock() (bool, error) {
	namePtr, err := syscall.UTF16PtrFromString(config.AppName + "_SingleInstanceMutex")
	if err != nil {
		return false, err
	}

	handle, err := windows.CreateMutex(nil, false, namePtr)
	if err != nil {
		if err == windows.ERROR_ALREADY_EXISTS {
			return false, nil
		}
		return false, fmt.Errorf("failed to create mutex: %w", err)
	}
	// CreateMutex can succeed while reporting an existing mutex.
	if windows.GetLastError() == windows.ERROR_ALREADY_EXISTS {
		windows.CloseHandle(handle)
		return false, nil
	}

	instanceMutex = handle
	return true, nil
}

// releaseLock drops the single-instance lock.
func releaseLock() {
	if instanceMutex == 0 {
		return
	}
	if err := windows.ReleaseMutex(instanceMutex); err != nil {
		log.Printf("Failed to release mutex: %v", err)
	}
	if err := windows.CloseHandle(instanceMutex); err != nil {
		log.Printf("Failed to close mutex handle: %v", err)
	}
	instanceMutex = 0
}
