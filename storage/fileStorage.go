package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/colinmarc/hdfs/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const hdfsRoot = "/tourizio/uploads"

type FileStorage struct {
	client *hdfs.Client
	logger *logrus.Logger
	tracer trace.Tracer
}

func New(logger *logrus.Logger, tracer trace.Tracer) (*FileStorage, error) {

	hdfsUri := os.Getenv("HDFS_URI")

	client, err := hdfs.New(hdfsUri)
	if err != nil {
		logger.Panic(err)
		return nil, err
	}

	return &FileStorage{
		client: client,
		logger: logger,
		tracer: tracer,
	}, nil
}

func (fs *FileStorage) Close() {
	// Close all underlying connections to the HDFS server
	fs.client.Close()
}

func (fs *FileStorage) CreateDirectoriesStart() error {
	err := fs.client.MkdirAll(hdfsRoot, 0644)
	if err != nil {
		fs.logger.Println(err)
		return err
	}
	return nil
}

func (fs *FileStorage) CreateDirectory(folderName string) error {
	folderPath := path.Join(hdfsRoot, folderName)
	err := fs.client.MkdirAll(folderPath, 0644)
	if err != nil {
		fs.logger.Printf("Error creating directory %s: %v", folderPath, err)
		return err
	}
	return nil
}

func (fs *FileStorage) SaveImage(ctx context.Context, folderName, imageName string, imageContent []byte) error {
	ctx, span := fs.tracer.Start(ctx, "FileStorage.SaveImage")
	defer span.End()

	folderPath := path.Join(hdfsRoot, folderName)
	imagePath := path.Join(folderPath, imageName)

	if err := fs.CreateDirectory(folderName); err != nil {
		span.SetStatus(codes.Error, err.Error())
		fs.logger.Printf("Error creating directory: %v", err)
		return err
	}

	file, err := fs.client.Create(imagePath)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		fs.logger.Printf("Error creating file %s: %v", imagePath, err)
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			span.SetStatus(codes.Error, closeErr.Error())
			fs.logger.Printf("Error closing file: %v", closeErr)
		}
	}()

	if _, err := file.Write(imageContent); err != nil {
		span.SetStatus(codes.Error, err.Error())
		fs.logger.Printf("Error writing image content: %v", err)
		return err
	}

	return nil
}

func (fs *FileStorage) GetImageContent(ctx context.Context, imagePath string) ([]byte, error) {
	ctx, span := fs.tracer.Start(ctx, "FileStorage.GetImageContent")
	defer span.End()

	fullPath := path.Join(hdfsRoot, "/", imagePath)

	file, err := fs.client.Open(fullPath)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		fs.logger.Println(err)
		return nil, fmt.Errorf("error opening file: %v", err)
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		fs.logger.Println(err)
		return nil, fmt.Errorf("error reading file: %v", err)
	}

	return imageData, nil
}
